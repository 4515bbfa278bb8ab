package ingestion

import "errors"

// Pipeline failure taxonomy. Every submission failure wraps exactly one of
// these sentinels so callers can classify without parsing messages.
var (
	// ErrInvalidInput indicates the submission failed validation before any
	// store was touched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageFailure indicates an asset upload failed or returned no
	// storage path.
	ErrStorageFailure = errors.New("asset storage failure")

	// ErrDescriptionFailure indicates the vision model produced no usable
	// description for the product image.
	ErrDescriptionFailure = errors.New("description not found")

	// ErrEncodingFailure indicates the embedding call failed.
	ErrEncodingFailure = errors.New("embedding failure")

	// ErrIndexFailure indicates the vector index upsert failed.
	ErrIndexFailure = errors.New("vector index failure")
)

// Construction errors
var (
	// ErrAssetStoreRequired is returned when an asset store is not provided.
	ErrAssetStoreRequired = errors.New("asset store required")

	// ErrVectorIndexRequired is returned when a vector index is not provided.
	ErrVectorIndexRequired = errors.New("vector index required")

	// ErrDescriberRequired is returned when a describer is not provided.
	ErrDescriberRequired = errors.New("describer required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)
