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

// Package reembed regenerates description embeddings for the whole catalog.
//
// Run it after switching embedding models or to backfill vectors for parts
// loaded while the embedding service was down. Parts are streamed from the
// repository in batches, embedded with retry and exponential backoff, and
// written back with normalized vectors. After a run the caller should
// rebuild the catalog snapshot so searches see the new vectors.
package reembed
