// Package memory implements storage.VectorIndex in process memory.
// It backs local development and the pipeline tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/poiesic/stitch/storage"
)

// Record is a stored index entry.
type Record struct {
	Id       string
	Vector   []float32
	Metadata map[string]any
}

// Index implements storage.VectorIndex with a mutex-guarded map.
type Index struct {
	records map[string]Record
	mtx     sync.RWMutex
}

var _ storage.VectorIndex = (*Index)(nil)

// NewIndex creates an empty in-memory vector index.
// Note: Returns concrete type so tests can inspect stored records.
func NewIndex() *Index {
	return &Index{
		records: map[string]Record{},
	}
}

// Upsert stores a copy of the vector and metadata under id. Writing the
// same id again replaces the entry, so repeated identical upserts leave
// the index unchanged.
func (i *Index) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]any) error {
	i.mtx.Lock()
	defer i.mtx.Unlock()

	vec := make([]float32, len(vector))
	copy(vec, vector)

	meta := make(map[string]any, len(metadata))
	maps.Copy(meta, metadata)

	i.records[id] = Record{Id: id, Vector: vec, Metadata: meta}

	return nil
}

// Get returns the record stored under id, if any.
func (i *Index) Get(id string) (Record, bool) {
	i.mtx.RLock()
	defer i.mtx.RUnlock()

	rec, ok := i.records[id]
	return rec, ok
}

// Len returns the number of stored records.
func (i *Index) Len() int {
	i.mtx.RLock()
	defer i.mtx.RUnlock()

	return len(i.records)
}

// Close is a no-op.
func (i *Index) Close() error {
	return nil
}
