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

package reembed

import (
	"context"

	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/storage"
)

const (
	// DefaultBatchSize is the default number of parts per batch
	DefaultBatchSize = 100
)

// PartIterator streams catalog parts in batches of batchSize, in part-number
// order.
type PartIterator struct {
	repo      storage.CatalogRepository
	batchSize int
}

// NewPartIterator creates a new part iterator.
// batchSize: number of parts per batch (must be > 0)
func NewPartIterator(repo storage.CatalogRepository, batchSize int) *PartIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &PartIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all catalog parts, calling fn for each full batch
// and once more for the final partial batch. Iteration stops on the first
// error from fn; context cancellation is honored between parts.
func (it *PartIterator) ForEach(ctx context.Context, fn func([]*core.PartRecord) error) error {
	batch := make([]*core.PartRecord, 0, it.batchSize)

	err := it.repo.ForEachPart(ctx, func(part *core.PartRecord) error {
		batch = append(batch, part)
		if len(batch) < it.batchSize {
			return nil
		}
		if err := fn(batch); err != nil {
			return err
		}
		batch = make([]*core.PartRecord, 0, it.batchSize)
		return nil
	})
	if err != nil {
		return err
	}

	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}
