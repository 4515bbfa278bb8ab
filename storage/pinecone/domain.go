package pinecone

// vector is a single record in an upsert request.
type vector struct {
	Id       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// upsertRequest is the body of POST /vectors/upsert.
type upsertRequest struct {
	Vectors   []vector `json:"vectors"`
	Namespace string   `json:"namespace,omitempty"`
}

// upsertResponse is the success envelope of POST /vectors/upsert.
type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

// errorResponse is the failure envelope returned by the Pinecone API.
type errorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
