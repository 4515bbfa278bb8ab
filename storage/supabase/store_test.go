package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/poiesic/stitch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) storage.AssetStore {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := NewStore(Config{
		BaseURL:    server.URL,
		ServiceKey: "service-key",
		Bucket:     "store",
	})
	require.NoError(t, err)

	return store
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"missing base url", Config{ServiceKey: "k", Bucket: "b"}},
		{"missing service key", Config{BaseURL: "http://x", Bucket: "b"}},
		{"missing bucket", Config{BaseURL: "http://x", ServiceKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestPut(t *testing.T) {
	var seenUpsert atomic.Value

	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/store/image_abc", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
		seenUpsert.Store(r.Header.Get("x-upsert"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"Key":"store/image_abc"}`))
	})

	path, err := store.Put(context.Background(), "image_abc", "image/jpeg", []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, "image_abc", path)
	assert.Equal(t, "false", seenUpsert.Load(), "uploads must not overwrite")
}

func TestPutDuplicate(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
	})

	_, err := store.Put(context.Background(), "image_abc", "image/jpeg", []byte{0x01})
	assert.ErrorIs(t, err, storage.ErrObjectExists)
}

func TestPutDuplicateLegacyStatus(t *testing.T) {
	// Older Supabase versions report duplicates as 400 with an error body.
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Duplicate"}`))
	})

	_, err := store.Put(context.Background(), "image_abc", "image/jpeg", []byte{0x01})
	assert.ErrorIs(t, err, storage.ErrObjectExists)
}

func TestPutServerError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := store.Put(context.Background(), "image_abc", "image/jpeg", []byte{0x01})
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrObjectExists)
}

func TestPublicURL(t *testing.T) {
	store, err := NewStore(Config{
		BaseURL:    "https://xyz.supabase.co/",
		ServiceKey: "k",
		Bucket:     "store",
	})
	require.NoError(t, err)

	url := store.PublicURL("image_abc")
	assert.Equal(t, "https://xyz.supabase.co/storage/v1/object/public/store/image_abc", url)
}
