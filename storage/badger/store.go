// Package badger implements storage.AssetStore on BadgerDB for local
// development and tests. Object bytes and a MUS-encoded manifest are
// written together in one transaction, so the no-overwrite check and the
// write are atomic.
package badger

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/stitch/storage"
)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Store implements storage.AssetStore on a local BadgerDB database.
type Store struct {
	db      *badger.DB
	baseURL string
	logger  *slog.Logger
}

var _ storage.AssetStore = (*Store)(nil)

// OpenStore opens a BadgerDB-backed asset store at the specified path.
// Creates the directory if it doesn't exist. An empty path with inMemory
// set opens an ephemeral store for testing. baseURL is the prefix under
// which stored objects are served.
func OpenStore(filePath string, inMemory bool, baseURL string) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:      db,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  slog.Default().With("component", "badger-store"),
	}, nil
}

// Put stores an object and its manifest. Fails with storage.ErrObjectExists
// if the name is already taken.
func (s *Store) Put(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	if s.db.IsClosed() {
		return "", storage.ErrStorageClosed
	}

	manifest := &storage.AssetManifest{
		Name:        name,
		ContentType: contentType,
		Size:        uint64(len(data)),
		Checksum:    checksum(data),
		StoredAt:    time.Now().UTC(),
	}

	objectKey := makeObjectKey(name)

	err := s.withTx(func(tx *badger.Txn) error {
		_, err := tx.Get(objectKey)
		if err == nil {
			return fmt.Errorf("%w: %s", storage.ErrObjectExists, name)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := tx.Set(objectKey, data); err != nil {
			return err
		}
		if err := tx.Set(makeManifestKey(name), storage.MarshalAssetManifest(manifest)); err != nil {
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug("stored object", "name", name, "bytes", len(data))

	return name, nil
}

// Get retrieves an object's bytes and manifest.
// Returns storage.ErrNotFound if the object doesn't exist.
func (s *Store) Get(ctx context.Context, name string) ([]byte, *storage.AssetManifest, error) {
	var data []byte
	var manifest *storage.AssetManifest

	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeObjectKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, name)
		}
		if err != nil {
			return err
		}
		if data, err = item.ValueCopy(nil); err != nil {
			return err
		}

		item, err = tx.Get(makeManifestKey(name))
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		manifest, err = storage.UnmarshalAssetManifest(raw)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return data, manifest, nil
}

// PublicURL resolves a storage path against the configured base URL.
func (s *Store) PublicURL(path string) string {
	return s.baseURL + "/" + path
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx executes a function within a read-write BadgerDB transaction.
// The transaction is automatically discarded if fn returns an error.
func (s *Store) withTx(fn func(tx *badger.Txn) error) error {
	tx := s.db.NewTransaction(true)
	defer tx.Discard()
	return fn(tx)
}

// checksum returns the hex-encoded BLAKE2b-256 digest of the object bytes.
func checksum(data []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
