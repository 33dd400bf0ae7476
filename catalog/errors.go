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

package catalog

import "errors"

var (
	// ErrRepositoryRequired indicates the store was constructed without a
	// catalog repository.
	ErrRepositoryRequired = errors.New("catalog repository is required")

	// ErrEmbedderRequired indicates the store was constructed without an
	// embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrNoValidRows indicates a load produced zero loadable parts.
	ErrNoValidRows = errors.New("no valid catalog rows")

	// ErrNotLoaded indicates a query ran before any catalog was loaded.
	ErrNotLoaded = errors.New("catalog not loaded")

	// ErrInvalidBatchSize indicates a non-positive load batch size.
	ErrInvalidBatchSize = errors.New("batch size must be positive")
)
