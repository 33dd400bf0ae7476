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

// Package search matches extracted requirements against the parts catalog.
//
// Four independent strategies retrieve candidates over a catalog snapshot:
//   - Fuzzy lexical matching on descriptions and part numbers
//   - Material grade matching with family-level partial credit
//   - Alternative material matching via the substitution table
//   - Semantic similarity over description embeddings
//
// Per-strategy scores are fused into one ranked list by weighted sum, and a
// selector applies the acceptance threshold and tie-break rules to produce a
// MatchResult with an auditable reasoning string. The Matcher ties the stages
// together and runs the strategies concurrently; a single strategy failure
// degrades to zero candidates from that strategy, never a failed match.
package search
