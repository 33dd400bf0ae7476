package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/forgeline/partmatch/ai"
)

// MockComplexityClassifier is a test double for ai.ComplexityClassifier.
type MockComplexityClassifier struct {
	// ClassifyComplexityFunc is called by ClassifyComplexity if set.
	// If nil, uses simple keyword heuristics.
	ClassifyComplexityFunc func(ctx context.Context, orderContext string) (ai.ComplexityLevel, error)

	callCount atomic.Int64
}

// NewMockComplexityClassifier creates a mock classifier with default behavior.
func NewMockComplexityClassifier() *MockComplexityClassifier {
	return &MockComplexityClassifier{}
}

// ClassifyComplexity grades the order by keyword heuristics: mentions of
// certifications, tolerances, or exotic alloys raise the level.
func (m *MockComplexityClassifier) ClassifyComplexity(ctx context.Context, orderContext string) (ai.ComplexityLevel, error) {
	m.callCount.Add(1)

	if m.ClassifyComplexityFunc != nil {
		return m.ClassifyComplexityFunc(ctx, orderContext)
	}

	lower := strings.ToLower(orderContext)
	for _, kw := range []string{"certification", "tolerance", "inconel", "titanium", "aerospace", "mil-spec"} {
		if strings.Contains(lower, kw) {
			return ai.ComplexityComplex, nil
		}
	}
	for _, kw := range []string{"custom", "cut to", "substitute", "equivalent"} {
		if strings.Contains(lower, kw) {
			return ai.ComplexityModerate, nil
		}
	}
	return ai.ComplexitySimple, nil
}

// CallCount returns the number of times ClassifyComplexity was called.
func (m *MockComplexityClassifier) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockComplexityClassifier) Reset() {
	m.callCount.Store(0)
	m.ClassifyComplexityFunc = nil
}
