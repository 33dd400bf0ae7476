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
	"fmt"
	"io"
	"time"

	"github.com/forgeline/partmatch/ai"
	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/storage"
)

// Config holds configuration for a reembedding run.
type Config struct {
	// BatchSize is the number of parts to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of parts)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder regenerates the description embeddings for every part in the
// catalog repository.
type Reembedder struct {
	repo      storage.CatalogRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *PartIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.CatalogRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		repo:      repo,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay),
		iterator:  NewPartIterator(repo, config.BatchSize),
	}
}

// Run reembeds every part in the repository, reporting progress as it goes.
// The caller is responsible for rebuilding the catalog snapshot afterwards.
func (r *Reembedder) Run(ctx context.Context) error {
	totalParts, err := r.repo.CountParts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count parts: %w", err)
	}

	if totalParts == 0 {
		fmt.Fprintf(r.progress, "No parts found in catalog (0 parts)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d parts (batch size: %d)\n",
		totalParts, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, totalParts, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.iterator.ForEach(ctx, func(parts []*core.PartRecord) error {
		if err := r.processor.Process(ctx, parts); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(parts)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d parts in %v (%.1f parts/sec)\n",
		totalParts, elapsed.Round(time.Second), float64(totalParts)/elapsed.Seconds())

	return nil
}
