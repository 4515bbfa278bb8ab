// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package supabase implements storage.AssetStore on the Supabase Storage
// REST API.
package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/stitch/storage"
)

const defaultTimeout = 15 * time.Second

// Config holds connection settings for a Supabase Storage bucket.
type Config struct {
	// BaseURL is the project URL, e.g. "https://xyz.supabase.co".
	BaseURL string

	// ServiceKey is the service-role API key used for uploads.
	ServiceKey string

	// Bucket is the storage bucket objects are written to.
	Bucket string

	// Timeout bounds each upload request. Default: 15s.
	Timeout time.Duration
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("supabase config: BaseURL is required")
	}
	if c.ServiceKey == "" {
		return errors.New("supabase config: ServiceKey is required")
	}
	if c.Bucket == "" {
		return errors.New("supabase config: Bucket is required")
	}
	return nil
}

// Store implements storage.AssetStore against Supabase Storage.
type Store struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

var _ storage.AssetStore = (*Store)(nil)

// NewStore creates an asset store backed by a Supabase Storage bucket.
//
// Returns storage.AssetStore interface to enforce abstraction.
func NewStore(config Config) (storage.AssetStore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	return &Store{
		config: config,
		client: &http.Client{Timeout: timeout},
		logger: slog.Default().With("component", "supabase-store"),
	}, nil
}

// Put uploads an object. Uploads are sent with upsert disabled, so a name
// collision fails with storage.ErrObjectExists instead of replacing the
// existing object.
func (s *Store) Put(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/storage/v1/object/%s/%s",
		s.config.BaseURL,
		url.PathEscape(s.config.Bucket),
		url.PathEscape(name),
	)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	request.Header.Set("Authorization", "Bearer "+s.config.ServiceKey)
	request.Header.Set("Content-Type", contentType)
	request.Header.Set("Cache-Control", "max-age=3600")
	request.Header.Set("x-upsert", "false")

	response, err := s.client.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	switch {
	case response.StatusCode == http.StatusConflict,
		response.StatusCode == http.StatusBadRequest && bytes.Contains(payload, []byte("Duplicate")):
		return "", fmt.Errorf("%w: %s", storage.ErrObjectExists, name)
	case response.StatusCode >= 400:
		return "", fmt.Errorf("supabase http %d: %s", response.StatusCode, string(payload))
	}

	s.logger.Debug("stored object", "name", name, "bytes", len(data))

	return name, nil
}

// PublicURL resolves a storage path into the bucket's public object URL.
func (s *Store) PublicURL(path string) string {
	return fmt.Sprintf(
		"%s/storage/v1/object/public/%s/%s",
		s.config.BaseURL,
		s.config.Bucket,
		path,
	)
}

// Close is a no-op; the store holds no resources beyond the HTTP client.
func (s *Store) Close() error {
	return nil
}
