package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/stitch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) storage.VectorIndex {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	index, err := NewIndex(Config{
		Host:      server.URL,
		APIKey:    "api-key",
		Namespace: "products",
	})
	require.NoError(t, err)

	return index
}

func TestConfigValidate(t *testing.T) {
	_, err := NewIndex(Config{APIKey: "k"})
	assert.Error(t, err)

	_, err = NewIndex(Config{Host: "http://x"})
	assert.Error(t, err)
}

func TestUpsert(t *testing.T) {
	var captured upsertRequest

	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/vectors/upsert", r.URL.Path)
		assert.Equal(t, "api-key", r.Header.Get("Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"upsertedCount":1}`))
	})

	meta := map[string]any{"name": "Tee", "price": 19.99}
	err := index.Upsert(context.Background(), "id-1", []float32{0.1, 0.2, 0.3, 0.4}, meta)
	require.NoError(t, err)

	require.Len(t, captured.Vectors, 1)
	assert.Equal(t, "id-1", captured.Vectors[0].Id)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, captured.Vectors[0].Values)
	assert.Equal(t, "products", captured.Namespace)
	assert.Equal(t, "Tee", captured.Vectors[0].Metadata["name"])
}

func TestUpsertCountMismatch(t *testing.T) {
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"upsertedCount":0}`))
	})

	err := index.Upsert(context.Background(), "id-1", []float32{0.1}, nil)
	assert.Error(t, err)
}

func TestUpsertAPIError(t *testing.T) {
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key","code":7}`))
	})

	err := index.Upsert(context.Background(), "id-1", []float32{0.1}, nil)
	assert.Error(t, err)
}
