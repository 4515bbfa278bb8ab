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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/poiesic/stitch/core"
	"github.com/poiesic/stitch/ingestion"
)

const defaultMaxUploadBytes = 32 << 20 // 32 MiB across both files

// Submitter is the ingestion entry point the HTTP layer depends on.
type Submitter interface {
	SubmitProduct(ctx context.Context, sub *core.ProductSubmission) (*core.Product, error)
}

// Server exposes product ingestion over HTTP.
type Server struct {
	submitter      Submitter
	router         *mux.Router
	logger         *slog.Logger
	maxUploadBytes int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger.With("component", "server")
	}
}

// WithMaxUploadBytes caps the total size of a multipart submission.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		s.maxUploadBytes = n
	}
}

// New creates a Server routing product submissions to the given Submitter.
func New(submitter Submitter, opts ...Option) (*Server, error) {
	if submitter == nil {
		return nil, errors.New("submitter is required")
	}

	s := &Server{
		submitter:      submitter,
		logger:         slog.Default().With("component", "server"),
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/products", s.handleCreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router = r

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	sub, err := s.decodeSubmission(r)
	if err != nil {
		s.logger.Warn("rejected malformed submission", "error", err)
		s.writeError(w, ingestion.ErrInvalidInput)
		return
	}

	product, err := s.submitter.SubmitProduct(r.Context(), sub)
	if err != nil {
		s.logger.Warn("submission failed", "error", err)
		s.writeError(w, err)
		return
	}

	s.logger.Info("product ingested", "id", product.Id)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "done",
		"data":   product,
	})
}

func (s *Server) decodeSubmission(r *http.Request) (*core.ProductSubmission, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		return nil, err
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		return nil, err
	}

	image, err := readImageFile(r, "image")
	if err != nil {
		return nil, err
	}
	texture, err := readImageFile(r, "texture")
	if err != nil {
		return nil, err
	}

	return &core.ProductSubmission{
		Fields: core.ProductFields{
			Name:         r.FormValue("name"),
			Brand:        r.FormValue("brand"),
			RetailerName: r.FormValue("retailer_name"),
			Price:        price,
			Category:     r.FormValue("category"),
		},
		Image:   image,
		Texture: texture,
	}, nil
}

func readImageFile(r *http.Request, field string) (core.ImageFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return core.ImageFile{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return core.ImageFile{}, err
	}

	return core.ImageFile{
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// errorKind maps a pipeline error to its wire-level kind. Every failure
// in the ingestion flow answers with status 400; the kind tells the
// caller which stage refused.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ingestion.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ingestion.ErrStorageFailure):
		return "storage_failure"
	case errors.Is(err, ingestion.ErrDescriptionFailure):
		return "description_failure"
	case errors.Is(err, ingestion.ErrEncodingFailure):
		return "encoding_failure"
	case errors.Is(err, ingestion.ErrIndexFailure):
		return "index_failure"
	default:
		return ""
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := errorKind(err)
	status := http.StatusBadRequest
	if kind == "" {
		kind = "internal_error"
		status = http.StatusInternalServerError
	}

	s.writeJSON(w, status, map[string]string{
		"error":   kind,
		"message": err.Error(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
