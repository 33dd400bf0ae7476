package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgeline/partmatch/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder generates description vectors through an OpenAI-compatible
// embedding endpoint. Catalog loading and reembedding feed it part
// descriptions in batches; the semantic strategy sends single requirement
// texts.
type Embedder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// The token is a placeholder for local OpenAI-compatible services
	// (Ollama, llama.cpp) that accept any value.
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "embedder"),
	}, nil
}

// NewEmbedder creates an embedder from the provided configuration.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector for one text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		e.logger.Warn("embedding service returned no vector", "length", len(text))
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedTexts generates vectors for a batch of texts in one request.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("embedding texts", "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("embedding request failed", "count", len(texts), "err", err)
		return nil, err
	}
	return vectors, nil
}
