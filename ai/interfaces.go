package ai

import "context"

// Describer derives a natural-language description of a garment from an
// image. Implementations must be thread-safe for concurrent use.
type Describer interface {
	// DescribeImage returns a bounded-length description of the clothing
	// visible in the image. The image is passed whole as a single payload
	// with its declared MIME type; there is no streaming. Sampling must be
	// deterministic so repeated calls on the same image are stable.
	// A semantically empty result is returned as an empty string, not an
	// error.
	DescribeImage(ctx context.Context, mimeType string, image []byte) (string, error)
}

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a fixed-dimension vector embedding for a single
	// text string. Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}
