package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/stitch/ai"
	"github.com/poiesic/stitch/core"
	"github.com/poiesic/stitch/storage"
)

// Pipeline orchestrates the ingestion of product submissions.
type Pipeline struct {
	assets    storage.AssetStore
	index     storage.VectorIndex
	describer ai.Describer
	embedder  ai.Embedder
	indexPool *ants.Pool
	pending   sync.WaitGroup
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithAsyncIndexing switches the vector upsert to a deliberate
// fire-without-blocking policy: SubmitProduct returns as soon as the record
// is assembled and the upsert runs on a worker pool of the given size.
// Upsert failures are logged, not returned; under this policy a crash after
// the response leaves stored assets and a description with no searchable
// index entry. Wait and Release are the join points.
//
// The default (no option) is synchronous indexing: the upsert completes
// before SubmitProduct returns and its failure surfaces as ErrIndexFailure.
func WithAsyncIndexing(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.indexPool != nil {
			p.indexPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.indexPool = pool
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline with injected collaborators.
func NewPipeline(
	assets storage.AssetStore,
	index storage.VectorIndex,
	describer ai.Describer,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if assets == nil {
		return nil, ErrAssetStoreRequired
	}
	if index == nil {
		return nil, ErrVectorIndexRequired
	}
	if describer == nil {
		return nil, ErrDescriberRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &Pipeline{
		assets:    assets,
		index:     index,
		describer: describer,
		embedder:  embedder,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// SubmitProduct runs one submission end to end and returns the assembled
// product record.
//
// Sequencing: validation happens before any side effect; the id is
// generated once and never regenerated mid-flow; both image uploads must
// succeed before the vision model is invoked (no billable work on a broken
// upload); an empty description stops the flow before any index work; the
// embedding and upsert run last. Each step proceeds only if the prior one
// succeeded, and no step is retried.
func (p *Pipeline) SubmitProduct(ctx context.Context, sub *core.ProductSubmission) (*core.Product, error) {
	if err := core.ValidateSubmission(sub); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	id := core.NewProductID()
	logger := p.logger.With("product_id", id)

	imagePath, texturePath, err := p.storeAssets(ctx, id, sub)
	if err != nil {
		logger.Error("asset upload failed", "err", err)
		return nil, err
	}

	description, err := p.describer.DescribeImage(ctx, sub.Image.ContentType, sub.Image.Data)
	if err != nil {
		logger.Error("description generation failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrDescriptionFailure, err)
	}

	// The record is assembled in memory before the empty-description check;
	// only the index write is gated on it.
	record := &core.Product{
		Id:           id,
		Name:         sub.Fields.Name,
		Brand:        sub.Fields.Brand,
		RetailerName: sub.Fields.RetailerName,
		Price:        sub.Fields.Price,
		Category:     sub.Fields.Category,
		Description:  description,
		ImageURL:     p.assets.PublicURL(imagePath),
		TextureURL:   p.assets.PublicURL(texturePath),
	}

	if len(description) == 0 {
		logger.Warn("empty description, record not indexed")
		return nil, ErrDescriptionFailure
	}

	vector, err := p.embedder.EmbedText(ctx, description)
	if err != nil {
		logger.Error("embedding failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEncodingFailure, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: embedder returned empty vector", ErrEncodingFailure)
	}

	if p.indexPool != nil {
		if err := p.upsertAsync(id, vector, record.Metadata(), logger); err != nil {
			return nil, err
		}
	} else {
		if err := p.index.Upsert(ctx, id, vector, record.Metadata()); err != nil {
			logger.Error("vector upsert failed", "err", err)
			return nil, fmt.Errorf("%w: %w", ErrIndexFailure, err)
		}
	}

	logger.Info("product ingested", "dimension", len(vector))

	return record, nil
}

// storeAssets uploads both images concurrently under the submission id and
// waits for both to finish. There is no short-circuit on first success:
// either failure fails the step, and a store that accepts an upload but
// reports no path is treated the same as a failed upload.
func (p *Pipeline) storeAssets(ctx context.Context, id string, sub *core.ProductSubmission) (string, string, error) {
	var (
		wg                     sync.WaitGroup
		imagePath, texturePath string
		imageErr, textureErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		imagePath, imageErr = p.assets.Put(ctx, core.ImageObjectName(id), sub.Image.ContentType, sub.Image.Data)
	}()
	go func() {
		defer wg.Done()
		texturePath, textureErr = p.assets.Put(ctx, core.TextureObjectName(id), sub.Texture.ContentType, sub.Texture.Data)
	}()
	wg.Wait()

	if imageErr != nil {
		return "", "", fmt.Errorf("%w: image: %w", ErrStorageFailure, imageErr)
	}
	if textureErr != nil {
		return "", "", fmt.Errorf("%w: texture: %w", ErrStorageFailure, textureErr)
	}
	if imagePath == "" || texturePath == "" {
		return "", "", fmt.Errorf("%w: %w", ErrStorageFailure, storage.ErrEmptyPath)
	}

	return imagePath, texturePath, nil
}

// upsertAsync submits the index write to the worker pool. The submission
// itself can still fail synchronously (pool exhausted or released); the
// upsert's own failure is only logged.
func (p *Pipeline) upsertAsync(id string, vector []float32, metadata map[string]any, logger *slog.Logger) error {
	p.pending.Add(1)

	err := p.indexPool.Submit(func() {
		defer p.pending.Done()
		if err := p.index.Upsert(context.Background(), id, vector, metadata); err != nil {
			logger.Error("async vector upsert failed", "err", err)
		}
	})
	if err != nil {
		p.pending.Done()
		return fmt.Errorf("%w: %w", ErrIndexFailure, err)
	}

	return nil
}

// Wait blocks until all in-flight async index writes have completed.
// It is a no-op under synchronous indexing.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release waits for in-flight async index writes and releases the worker
// pool. The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.pending.Wait()
	if p.indexPool != nil {
		p.indexPool.Release()
	}
}
