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

package search

import "errors"

var (
	// ErrStoreRequired is returned when a catalog store is not provided.
	ErrStoreRequired = errors.New("catalog store required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrNoStrategies is returned when a matcher is configured with an empty
	// strategy set.
	ErrNoStrategies = errors.New("at least one strategy required")

	// ErrInvalidWeights is returned when fusion weights do not sum to 1.0.
	ErrInvalidWeights = errors.New("fusion weights must be non-negative and sum to 1.0")

	// ErrInvalidThreshold is returned when an acceptance or borderline
	// threshold is outside [0,1] or the bounds are inverted.
	ErrInvalidThreshold = errors.New("thresholds must lie in [0,1] with accept <= borderline")
)
