// Copyright 2026 Forgeline Systems
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


package mock

import "github.com/forgeline/partmatch/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock embedder, extractor, and classifier instances.
type MockProvider struct {
	embedder   *MockEmbedder
	extractor  *MockRequirementExtractor
	classifier *MockComplexityClassifier
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production
// constructors. Use GetMockEmbedder()/GetMockExtractor()/GetMockClassifier()
// to access concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		extractor:  NewMockRequirementExtractor(),
		classifier: NewMockComplexityClassifier(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock
// services. This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, extractor *MockRequirementExtractor, classifier *MockComplexityClassifier) ai.AIProvider {
	return &MockProvider{
		embedder:   embedder,
		extractor:  extractor,
		classifier: classifier,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// RequirementExtractor returns the mock requirement extractor.
func (p *MockProvider) RequirementExtractor() ai.RequirementExtractor {
	return p.extractor
}

// ComplexityClassifier returns the mock complexity classifier.
func (p *MockProvider) ComplexityClassifier() ai.ComplexityClassifier {
	return p.classifier
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockRequirementExtractor {
	return p.extractor
}

// GetMockClassifier returns the underlying mock classifier for test assertions.
func (p *MockProvider) GetMockClassifier() *MockComplexityClassifier {
	return p.classifier
}
