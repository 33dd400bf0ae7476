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


// Package ai provides abstractions for the AI capabilities partmatch consumes.
//
// The matching core treats natural-language understanding as external: it
// depends on interfaces, not concrete model clients. This package defines
// those seams:
//
//   - Embedder: generates vector embeddings for semantic search
//   - RequirementExtractor: turns purchase-order text into line items
//   - ComplexityClassifier: grades order fulfillment difficulty (consumed by
//     callers, not by the matching core)
//   - AIProvider: aggregates the three for initialization and lifecycle
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles with no external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// interface types to enforce abstraction. Mock constructors return concrete
// types so tests can inject behavior and assert call counts; use
// GetMockEmbedder()/GetMockExtractor() on the mock provider when the
// concrete type is needed.
//
// # Usage
//
//	provider, err := openai.NewProvider(ai.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "4140 round bar 2in")
//	reqs, err := provider.RequirementExtractor().ExtractRequirements(ctx, orderText)
package ai
