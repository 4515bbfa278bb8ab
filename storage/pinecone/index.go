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


// Package pinecone implements storage.VectorIndex on the Pinecone REST API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/stitch/storage"
)

const defaultTimeout = 15 * time.Second

// Config holds connection settings for a Pinecone index.
type Config struct {
	// Host is the index host URL, e.g. "https://products-abc123.svc.us-east-1-aws.pinecone.io".
	Host string

	// APIKey authenticates requests against the index.
	APIKey string

	// Namespace scopes records within the index. Optional.
	Namespace string

	// Timeout bounds each request. Default: 15s.
	Timeout time.Duration
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("pinecone config: Host is required")
	}
	if c.APIKey == "" {
		return errors.New("pinecone config: APIKey is required")
	}
	return nil
}

// Index implements storage.VectorIndex against a Pinecone index.
type Index struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

var _ storage.VectorIndex = (*Index)(nil)

// NewIndex creates a vector index client for a Pinecone index host.
//
// Returns storage.VectorIndex interface to enforce abstraction.
func NewIndex(config Config) (storage.VectorIndex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	config.Host = strings.TrimSuffix(config.Host, "/")

	return &Index{
		config: config,
		client: &http.Client{Timeout: timeout},
		logger: slog.Default().With("component", "pinecone-index"),
	}, nil
}

// Upsert writes one record keyed by id. Pinecone upserts are idempotent on
// id: repeating the call with the same values replaces the record in place.
func (i *Index) Upsert(ctx context.Context, id string, vec []float32, metadata map[string]any) error {
	req := upsertRequest{
		Vectors: []vector{
			{Id: id, Values: vec, Metadata: metadata},
		},
		Namespace: i.config.Namespace,
	}

	var rsp upsertResponse
	if err := i.do(ctx, http.MethodPost, "/vectors/upsert", req, &rsp); err != nil {
		return err
	}

	if rsp.UpsertedCount != 1 {
		return fmt.Errorf("pinecone upserted %d records, expected 1", rsp.UpsertedCount)
	}

	i.logger.Debug("upserted record", "id", id, "dimension", len(vec))

	return nil
}

// Close is a no-op; the index holds no resources beyond the HTTP client.
func (i *Index) Close() error {
	return nil
}

func (i *Index) do(ctx context.Context, method string, path string, req any, rsp any) error {
	var buf io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, i.config.Host+path, buf)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Api-Key", i.config.APIKey)

	response, err := i.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		var apiErr errorResponse
		if err := json.Unmarshal(payload, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("pinecone http %d: %s", response.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("pinecone http %d: %s", response.StatusCode, string(payload))
	}

	if rsp != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, rsp); err != nil {
			return err
		}
	}

	return nil
}
