package storage

import "context"

// AssetStore provides durable blob storage for product images.
// Implementations must be thread-safe and must tolerate concurrent writes
// under distinct object names without corrupting unrelated objects.
type AssetStore interface {
	// Put stores an object under the given name and returns its storage
	// path. Names are never overwritten: storing under an existing name
	// fails with ErrObjectExists instead of silently replacing the object.
	Put(ctx context.Context, name string, contentType string, data []byte) (string, error)

	// PublicURL resolves a storage path returned by Put into a publicly
	// retrievable URL.
	PublicURL(path string) string

	// Close releases resources held by the store.
	Close() error
}

// VectorIndex is an upsert-only key/value-with-vector index keyed by
// product id. Implementations must be thread-safe.
type VectorIndex interface {
	// Upsert writes the vector and its metadata under the given id.
	// The operation is idempotent on id: repeating it with the same vector
	// and metadata is never an error and leaves the index in the same
	// observable state. Metadata values are scalars only.
	Upsert(ctx context.Context, id string, vector []float32, metadata map[string]any) error

	// Close releases resources held by the index.
	Close() error
}
