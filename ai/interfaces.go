package ai

import (
	"context"

	"github.com/forgeline/partmatch/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// RequirementExtractor extracts structured line-item requirements from
// unstructured purchase-order text.
// Implementations must be thread-safe for concurrent use.
type RequirementExtractor interface {
	// ExtractRequirements analyzes document text and returns the line items it
	// describes, in document order. Structured attributes (material, form,
	// dimensions, quantity) are populated on a best-effort basis.
	// Returns an empty slice if no line items are found.
	// Returns an error if extraction fails.
	ExtractRequirements(ctx context.Context, text string) ([]core.Requirement, error)
}

// ComplexityClassifier estimates how difficult an order is to fulfill.
// The matching core does not consume this capability itself; it is exposed
// for callers choosing a downstream fulfillment strategy.
type ComplexityClassifier interface {
	// ClassifyComplexity inspects order context and returns a complexity level.
	ClassifyComplexity(ctx context.Context, orderContext string) (ComplexityLevel, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages the embedding,
// extraction, and classification services, ensuring they share configuration
// and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// RequirementExtractor returns the line-item extraction service.
	// The returned RequirementExtractor is safe for concurrent use.
	RequirementExtractor() RequirementExtractor

	// ComplexityClassifier returns the order complexity classifier.
	// The returned ComplexityClassifier is safe for concurrent use.
	ComplexityClassifier() ComplexityClassifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
