package mock

import (
	"context"
	"hash/fnv"
	"sync/atomic"
)

// mockDim matches the dimensionality of the nomic-style embedding models the
// real provider targets.
const mockDim = 384

// MockEmbedder is a test double for ai.Embedder. Without overrides it hashes
// the input text into a repeatable pseudo-random vector, so identical text
// always embeds identically and fusion stays reproducible in tests.
type MockEmbedder struct {
	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// The pipeline embeds requirements from pool workers concurrently,
	// so the counter must be atomic.
	callCount atomic.Int64
}

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText returns a deterministic vector derived from the text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount.Add(1)

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return hashVector(text), nil
}

// EmbedTexts returns one deterministic vector per input text.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount.Add(1)

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = hashVector(text)
	}
	return vectors, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockEmbedder) Reset() {
	m.callCount.Store(0)
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// hashVector expands an FNV hash of the text into a vector through a linear
// congruential generator. Consumers normalize before use, so the raw scale
// does not matter.
func hashVector(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	state := h.Sum32()

	vector := make([]float32, mockDim)
	for i := range vector {
		state = state*1664525 + 1013904223
		vector[i] = float32(state%1000) / 1000.0
	}
	return vector
}
