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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/stitch/ai"
	"github.com/poiesic/stitch/ai/ollama"
	"github.com/poiesic/stitch/ai/openai"
	"github.com/poiesic/stitch/ingestion"
	"github.com/poiesic/stitch/server"
	"github.com/poiesic/stitch/storage"
	"github.com/poiesic/stitch/storage/badger"
	"github.com/poiesic/stitch/storage/memory"
	"github.com/poiesic/stitch/storage/pinecone"
	"github.com/poiesic/stitch/storage/supabase"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "stitch",
		Usage: "Garment product ingestion service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the product ingestion HTTP server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "listen",
						Usage:   "Address to listen on",
						Value:   ":8080",
						EnvVars: []string{"STITCH_LISTEN"},
					},
					&cli.BoolFlag{
						Name:  "local",
						Usage: "Use local on-disk asset storage and an in-memory vector index",
					},
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory for local asset storage (with --local)",
						Value:   "stitch-data",
						EnvVars: []string{"STITCH_DATA_DIR"},
					},
					&cli.StringFlag{
						Name:    "supabase-url",
						Usage:   "Supabase project base URL",
						EnvVars: []string{"SUPABASE_URL"},
					},
					&cli.StringFlag{
						Name:    "supabase-key",
						Usage:   "Supabase service role key",
						EnvVars: []string{"SUPABASE_SERVICE_KEY"},
					},
					&cli.StringFlag{
						Name:    "supabase-bucket",
						Usage:   "Supabase storage bucket for product assets",
						Value:   "product-images",
						EnvVars: []string{"SUPABASE_BUCKET"},
					},
					&cli.StringFlag{
						Name:    "pinecone-host",
						Usage:   "Pinecone index host URL",
						EnvVars: []string{"PINECONE_HOST"},
					},
					&cli.StringFlag{
						Name:    "pinecone-key",
						Usage:   "Pinecone API key",
						EnvVars: []string{"PINECONE_API_KEY"},
					},
					&cli.StringFlag{
						Name:    "pinecone-namespace",
						Usage:   "Pinecone namespace for product vectors",
						EnvVars: []string{"PINECONE_NAMESPACE"},
					},
					&cli.StringFlag{
						Name:    "vision-host",
						Usage:   "Vision model service host URL",
						Value:   "http://localhost:11434",
						EnvVars: []string{"STITCH_VISION_HOST"},
					},
					&cli.StringFlag{
						Name:    "vision-model",
						Usage:   "Vision model name for garment descriptions",
						Value:   "llava",
						EnvVars: []string{"STITCH_VISION_MODEL"},
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434",
						EnvVars: []string{"STITCH_EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						Value:   "embeddinggemma",
						EnvVars: []string{"STITCH_EMBEDDING_MODEL"},
					},
					&cli.IntFlag{
						Name:    "index-workers",
						Usage:   "Workers for asynchronous index upserts (0 keeps upserts synchronous)",
						Value:   0,
						EnvVars: []string{"STITCH_INDEX_WORKERS"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	logger := slog.Default()

	assets, index, err := buildStorage(c)
	if err != nil {
		return err
	}
	defer assets.Close()
	defer index.Close()

	aiConfig := ai.NewConfig(
		ai.WithVisionHost(c.String("vision-host")),
		ai.WithVisionModel(c.String("vision-model")),
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	describer, err := ollama.NewDescriber(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create describer: %w", err)
	}
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	pipelineOpts := []ingestion.Option{ingestion.WithLogger(logger)}
	if workers := c.Int("index-workers"); workers > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithAsyncIndexing(workers))
	}

	pipeline, err := ingestion.NewPipeline(assets, index, describer, embedder, pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	srv, err := server.New(pipeline, server.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              c.String("listen"),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	// Let in-flight asynchronous upserts drain before the index closes.
	pipeline.Wait()
	return nil
}

func buildStorage(c *cli.Context) (storage.AssetStore, storage.VectorIndex, error) {
	if c.Bool("local") {
		store, err := badger.OpenStore(c.String("data-dir"), false, "http://localhost"+c.String("listen"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local asset store: %w", err)
		}
		return store, memory.NewIndex(), nil
	}

	if c.String("supabase-url") == "" || c.String("supabase-key") == "" {
		return nil, nil, errors.New("supabase-url and supabase-key are required (or pass --local)")
	}
	if c.String("pinecone-host") == "" || c.String("pinecone-key") == "" {
		return nil, nil, errors.New("pinecone-host and pinecone-key are required (or pass --local)")
	}

	assets, err := supabase.NewStore(supabase.Config{
		BaseURL:    c.String("supabase-url"),
		ServiceKey: c.String("supabase-key"),
		Bucket:     c.String("supabase-bucket"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create asset store: %w", err)
	}

	index, err := pinecone.NewIndex(pinecone.Config{
		Host:      c.String("pinecone-host"),
		APIKey:    c.String("pinecone-key"),
		Namespace: c.String("pinecone-namespace"),
	})
	if err != nil {
		assets.Close()
		return nil, nil, fmt.Errorf("failed to create vector index: %w", err)
	}

	return assets, index, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
