package mock

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/forgeline/partmatch/core"
)

// MockRequirementExtractor is a test double for ai.RequirementExtractor.
// It allows custom behavior injection via function fields.
type MockRequirementExtractor struct {
	// ExtractRequirementsFunc is called by ExtractRequirements if set.
	// If nil, uses default line-splitting behavior.
	ExtractRequirementsFunc func(ctx context.Context, text string) ([]core.Requirement, error)

	callCount atomic.Int64
}

// NewMockRequirementExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockRequirementExtractor() *MockRequirementExtractor {
	return &MockRequirementExtractor{}
}

var (
	gradePattern    = regexp.MustCompile(`\b([0-9]{3,4}(?:-[A-Za-z0-9]+)?|30[0-9]L?|17-4)\b`)
	quantityPattern = regexp.MustCompile(`(?i)\b(?:qty|x)\s*([0-9]+)\b|\b([0-9]+)\s*(?:pcs|pieces|ea)\b`)
)

// ExtractRequirements splits the document into one requirement per
// non-empty line and pulls out a material grade and quantity with simple
// pattern matching. Deterministic for identical input.
func (m *MockRequirementExtractor) ExtractRequirements(ctx context.Context, text string) ([]core.Requirement, error) {
	m.callCount.Add(1)

	if m.ExtractRequirementsFunc != nil {
		return m.ExtractRequirementsFunc(ctx, text)
	}

	lines := strings.Split(text, "\n")
	requirements := make([]core.Requirement, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		req := core.Requirement{
			Id:      core.IDFromContent(line),
			RawText: line,
		}

		if match := gradePattern.FindStringSubmatch(line); match != nil {
			req.Material = match[1]
		}
		if match := quantityPattern.FindStringSubmatch(line); match != nil {
			for _, group := range match[1:] {
				if group != "" {
					req.Quantity, _ = strconv.Atoi(group)
					break
				}
			}
		}

		lower := strings.ToLower(line)
		for _, form := range []string{"bar", "rod", "sheet", "plate", "tube", "pipe", "angle", "channel"} {
			if strings.Contains(lower, form) {
				req.Form = form
				break
			}
		}

		requirements = append(requirements, req)
	}

	return requirements, nil
}

// CallCount returns the number of times ExtractRequirements was called.
func (m *MockRequirementExtractor) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockRequirementExtractor) Reset() {
	m.callCount.Store(0)
	m.ExtractRequirementsFunc = nil
}
