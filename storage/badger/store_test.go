package badger

import (
	"context"
	"testing"

	"github.com/poiesic/stitch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore("", true, "http://localhost:8080/assets")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestPutAndGet(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	payload := []byte{0xff, 0xd8, 0xff, 0xe0}

	path, err := store.Put(ctx, "image_abc", "image/jpeg", payload)
	require.NoError(t, err)
	assert.Equal(t, "image_abc", path)

	data, manifest, err := store.Get(ctx, "image_abc")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image_abc", manifest.Name)
	assert.Equal(t, "image/jpeg", manifest.ContentType)
	assert.Equal(t, uint64(len(payload)), manifest.Size)
	assert.NotEmpty(t, manifest.Checksum)
	assert.False(t, manifest.StoredAt.IsZero())
}

func TestPutNoOverwrite(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "image_abc", "image/jpeg", []byte{0x01})
	require.NoError(t, err)

	_, err = store.Put(ctx, "image_abc", "image/jpeg", []byte{0x02})
	assert.ErrorIs(t, err, storage.ErrObjectExists)

	// First write is untouched.
	data, _, err := store.Get(ctx, "image_abc")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, data)
}

func TestGetMissing(t *testing.T) {
	store := newMemoryStore(t)

	_, _, err := store.Get(context.Background(), "texture_missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestChecksumIsStable(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	payload := []byte("identical bytes")

	_, err := store.Put(ctx, "a", "image/png", payload)
	require.NoError(t, err)
	_, err = store.Put(ctx, "b", "image/png", payload)
	require.NoError(t, err)

	_, ma, err := store.Get(ctx, "a")
	require.NoError(t, err)
	_, mb, err := store.Get(ctx, "b")
	require.NoError(t, err)

	assert.Equal(t, ma.Checksum, mb.Checksum)
}

func TestPublicURL(t *testing.T) {
	store := newMemoryStore(t)

	assert.Equal(t, "http://localhost:8080/assets/image_x", store.PublicURL("image_x"))
}
