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

package pipeline

import "errors"

var (
	// ErrMatcherRequired is returned when a matcher is not provided.
	ErrMatcherRequired = errors.New("matcher required")

	// ErrExtractorRequired is returned when a requirement extractor is not provided.
	ErrExtractorRequired = errors.New("requirement extractor required")

	// ErrJobIdRequired is returned when a job id is empty.
	ErrJobIdRequired = errors.New("job id required")

	// ErrJobFailed wraps the cause when a job reaches the failed state.
	ErrJobFailed = errors.New("job failed")
)
