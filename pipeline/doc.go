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

// Package pipeline drives a purchase-order job from raw text to an
// assembled order.
//
// The Orchestrator walks each job through a fixed stage sequence
// (received, extracting, matching, validating, assembling, completed) and
// publishes a progress event at every transition. Matching fans out across
// requirements on a worker pool; a single requirement's failure degrades
// that line item to an error result while the job proceeds. Every job
// terminates in completed or failed, and a completed job always yields a
// well-formed AssembledOrder even when no line item matched.
package pipeline
