package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/forgeline/partmatch/ai"
	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/storage"
)

// BatchProcessor regenerates embeddings for batches of catalog parts.
type BatchProcessor struct {
	repo           storage.CatalogRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.CatalogRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds the descriptions of a batch of parts and writes the parts
// back with normalized vectors, so the stored dot product equals cosine
// similarity.
func (bp *BatchProcessor) Process(ctx context.Context, parts []*core.PartRecord) error {
	if len(parts) == 0 {
		return nil
	}

	texts := make([]string, len(parts))
	for i, part := range parts {
		texts[i] = part.Description
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(parts) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(parts), len(embeddings))
	}

	for i := range parts {
		parts[i].Vector = core.NormalizeVector(embeddings[i])
	}

	if _, err := bp.repo.PutParts(ctx, parts...); err != nil {
		return fmt.Errorf("failed to update parts: %w", err)
	}

	return nil
}
