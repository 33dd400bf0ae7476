package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbeddingCountMismatch is returned when the embedder returns a
	// different number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match batch size")
)
