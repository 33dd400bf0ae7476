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

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/forgeline/partmatch/ai"
	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/storage"
)

const defaultBatchSize = 32

// LoadReport summarizes a catalog load.
type LoadReport struct {
	TotalRows     int
	LoadedParts   int
	SkippedRows   int
	EmbeddedParts int
	Errors        []error
}

// Stats describes the live catalog snapshot.
type Stats struct {
	TotalParts          int
	Materials           []string
	Forms               []string
	TotalInventoryValue decimal.Decimal
	EmbeddedParts       int
}

// Store owns the persisted catalog and its in-memory snapshot. Loads replace
// the full catalog; reads always see a complete snapshot.
type Store struct {
	repo          storage.CatalogRepository
	embedder      ai.Embedder
	substitutions SubstitutionTable
	batchSize     int
	logger        *slog.Logger

	loadMu   sync.Mutex
	snapshot atomic.Pointer[Snapshot]
}

// StoreOption configures a Store.
type StoreOption func(*Store) error

// WithSubstitutions overlays custom substitution rows on the defaults.
func WithSubstitutions(table SubstitutionTable) StoreOption {
	return func(s *Store) error {
		s.substitutions = s.substitutions.Merge(table)
		return nil
	}
}

// WithBatchSize sets the embedding batch size used during loads.
func WithBatchSize(size int) StoreOption {
	return func(s *Store) error {
		if size <= 0 {
			return ErrInvalidBatchSize
		}
		s.batchSize = size
		return nil
	}
}

// WithLogger sets the logger for load and reload progress.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// NewStore creates a catalog store over the given repository and embedder.
func NewStore(repo storage.CatalogRepository, embedder ai.Embedder, opts ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	store := &Store{
		repo:          repo,
		embedder:      embedder,
		substitutions: DefaultSubstitutions(),
		batchSize:     defaultBatchSize,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(store); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Substitutions returns the active substitution table.
func (s *Store) Substitutions() SubstitutionTable {
	return s.substitutions
}

// Snapshot returns the current catalog snapshot, or ErrNotLoaded before the
// first successful load or reload.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Load validates, embeds, and persists the given rows as the new catalog,
// then publishes a fresh snapshot. Invalid rows are skipped and reported;
// the load fails only when no row is loadable. Embedding failures degrade to
// parts without vectors rather than failing the load.
func (s *Store) Load(ctx context.Context, rows []core.CatalogRow) (*LoadReport, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	report := &LoadReport{TotalRows: len(rows)}

	parts := make([]*core.PartRecord, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		part, err := core.PartFromRow(&row)
		if err != nil {
			report.SkippedRows++
			report.Errors = append(report.Errors, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		if seen[part.PartNumber] {
			report.SkippedRows++
			report.Errors = append(report.Errors, fmt.Errorf("row %d: duplicate part number %q", i, part.PartNumber))
			continue
		}
		seen[part.PartNumber] = true
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return report, ErrNoValidRows
	}

	if err := s.repo.Clear(ctx); err != nil {
		return report, fmt.Errorf("failed to clear catalog: %w", err)
	}

	for start := 0; start < len(parts); start += s.batchSize {
		end := min(start+s.batchSize, len(parts))
		batch := parts[start:end]

		texts := make([]string, len(batch))
		for i, part := range batch {
			texts[i] = part.Description
		}

		vectors, err := s.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			s.logger.Warn("embedding batch failed, loading without vectors",
				"start", start, "count", len(batch), "error", err)
		} else if len(vectors) == len(batch) {
			for i, part := range batch {
				part.Vector = core.NormalizeVector(vectors[i])
				report.EmbeddedParts++
			}
		}

		if _, err := s.repo.PutParts(ctx, batch...); err != nil {
			return report, fmt.Errorf("failed to persist catalog batch: %w", err)
		}
		report.LoadedParts += len(batch)
	}

	snap := NewSnapshot(parts)
	s.snapshot.Store(snap)

	s.logger.Info("catalog loaded",
		"total_rows", report.TotalRows,
		"loaded", report.LoadedParts,
		"skipped", report.SkippedRows,
		"embedded", report.EmbeddedParts)

	return report, nil
}

// Reload rebuilds the snapshot from the repository. Used after out-of-band
// writes such as a vector refresh.
func (s *Store) Reload(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	var parts []*core.PartRecord
	err := s.repo.ForEachPart(ctx, func(part *core.PartRecord) error {
		parts = append(parts, part)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	snap := NewSnapshot(parts)
	s.snapshot.Store(snap)

	s.logger.Info("catalog snapshot rebuilt", "parts", snap.Len())
	return nil
}

// Stats computes summary statistics from the live snapshot.
func (s *Store) Stats() (*Stats, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalParts:          snap.Len(),
		Materials:           snap.Materials(),
		EmbeddedParts:       len(snap.Vectors()),
		TotalInventoryValue: decimal.Zero,
	}

	forms := make(map[string]bool)
	for _, part := range snap.Parts() {
		form := NormalizeForm(part.Form)
		if form != "" && !forms[form] {
			forms[form] = true
			stats.Forms = append(stats.Forms, form)
		}
		qty := decimal.NewFromInt(part.Availability)
		stats.TotalInventoryValue = stats.TotalInventoryValue.Add(part.UnitPrice.Mul(qty))
	}
	sort.Strings(stats.Forms)

	return stats, nil
}
