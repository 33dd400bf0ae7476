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

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/forgeline/partmatch/ai"
	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/core"
)

// Matcher resolves one requirement to a match decision: it fans out to all
// strategies concurrently over the current catalog snapshot, fuses their
// candidates, and applies the selector.
type Matcher struct {
	store      *catalog.Store
	strategies []Strategy
	cfg        Config
	logger     *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithConfig sets the matching parameters.
// Default is DefaultConfig().
func WithConfig(cfg Config) Option {
	return func(m *Matcher) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		m.cfg = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithStrategies replaces the default strategy set. Used by tests to inject
// deterministic or failing strategies.
func WithStrategies(strategies ...Strategy) Option {
	return func(m *Matcher) error {
		if len(strategies) == 0 {
			return ErrNoStrategies
		}
		m.strategies = strategies
		return nil
	}
}

// NewMatcher creates a matcher over the catalog store with the default
// strategy set: fuzzy lexical, material grade, alternative material, and
// semantic similarity.
func NewMatcher(store *catalog.Store, provider ai.AIProvider, opts ...Option) (*Matcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	m := &Matcher{
		store: store,
		strategies: []Strategy{
			FuzzyStrategy{},
			MaterialStrategy{},
			AlternativeStrategy{Table: store.Substitutions()},
			SemanticStrategy{Embedder: provider.Embedder()},
		},
		cfg:    DefaultConfig(),
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Config returns the active matching parameters.
func (m *Matcher) Config() Config {
	return m.cfg
}

// Search runs all strategies for a requirement and returns the fused ranking
// without applying the selector. Strategy failures degrade to zero
// candidates from that strategy.
func (m *Matcher) Search(ctx context.Context, req core.Requirement) ([]core.FusedCandidate, error) {
	snap, err := m.store.Snapshot()
	if err != nil {
		return nil, err
	}
	byStrategy, _ := m.runStrategies(ctx, req, snap, &noopMonitor{})
	return Fuse(byStrategy, m.cfg.Weights), nil
}

// Match resolves a requirement to a MatchResult. The returned error is
// reserved for pipeline-level failures such as an unloaded catalog; strategy
// failures degrade per strategy, and a requirement where every strategy
// failed resolves to a result with status error rather than failing the call.
func (m *Matcher) Match(ctx context.Context, req core.Requirement) (*core.MatchResult, error) {
	return m.MatchWithMonitor(ctx, req, nil)
}

// MatchWithMonitor resolves a requirement with monitoring. The monitor
// receives callbacks after each strategy completes, after fusion, and with
// the final result.
func (m *Matcher) MatchWithMonitor(ctx context.Context, req core.Requirement, monitor MatchMonitor) (*core.MatchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(req)

	if err := core.ValidateRequirement(&req); err != nil {
		result := &core.MatchResult{
			RequirementId: req.Id,
			RawText:       req.RawText,
			Status:        core.MatchStatusError,
			Reasoning:     "requirement failed validation",
			Err:           err.Error(),
		}
		monitor.Finish(result)
		return result, nil
	}

	snap, err := m.store.Snapshot()
	if err != nil {
		return nil, err
	}

	byStrategy, failures := m.runStrategies(ctx, req, snap, monitor)

	if len(failures) == len(m.strategies) {
		result := &core.MatchResult{
			RequirementId: req.Id,
			RawText:       req.RawText,
			Status:        core.MatchStatusError,
			Reasoning:     "every strategy failed for this requirement",
			Err:           errors.Join(failures...).Error(),
		}
		monitor.Finish(result)
		return result, nil
	}

	fused := Fuse(byStrategy, m.cfg.Weights)
	monitor.AfterFusion(fused)

	result := Select(req, fused, m.cfg)
	monitor.Finish(&result)
	return &result, nil
}

// validateScores enforces the strategy contract that similarity scores lie
// in [0,1]. A strategy emitting an out-of-range score is treated as failed
// so a misbehaving signal cannot skew the fused ranking.
func validateScores(candidates []core.SearchCandidate) error {
	for _, c := range candidates {
		if c.Score < 0 || c.Score > 1 {
			return fmt.Errorf("%w: %s scored %s at %.4f",
				core.ErrInvalidScore, c.Strategy, c.PartNumber, c.Score)
		}
	}
	return nil
}

// runStrategies fans out to all strategies concurrently and collects their
// candidate lists. A failing strategy contributes no candidates; the failure
// is logged and reported to the monitor.
func (m *Matcher) runStrategies(ctx context.Context, req core.Requirement, snap *catalog.Snapshot, monitor MatchMonitor) (map[core.StrategyName][]core.SearchCandidate, []error) {
	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		byStrategy = make(map[core.StrategyName][]core.SearchCandidate, len(m.strategies))
		failures   []error
	)

	for _, strategy := range m.strategies {
		wg.Add(1)
		go func(strategy Strategy) {
			defer wg.Done()
			candidates, err := strategy.Search(ctx, req, snap, m.cfg)
			if err == nil {
				err = validateScores(candidates)
			}

			mu.Lock()
			defer mu.Unlock()
			monitor.AfterStrategy(strategy.Name(), candidates, err)
			if err != nil {
				m.logger.Warn("strategy failed, treating as zero candidates",
					"strategy", strategy.Name(), "requirement", req.RawText, "err", err)
				failures = append(failures, err)
				return
			}
			if len(candidates) > 0 {
				byStrategy[strategy.Name()] = candidates
			}
		}(strategy)
	}
	wg.Wait()

	return byStrategy, failures
}
