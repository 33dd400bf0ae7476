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

// Package partmatch matches purchase-order line items against a parts
// catalog. The Service wires the storage backend, the AI provider, the
// catalog store, and the matcher into one entry point; jobs run through the
// pipeline package.
package partmatch

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/forgeline/partmatch/ai"
	"github.com/forgeline/partmatch/ai/openai"
	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/pipeline"
	"github.com/forgeline/partmatch/reembed"
	"github.com/forgeline/partmatch/search"
	"github.com/forgeline/partmatch/storage"
	"github.com/forgeline/partmatch/storage/badger"
)

// Service is the top-level entry point: a persisted catalog plus the
// matching engine over it.
type Service struct {
	backend  *badger.Backend
	repo     storage.CatalogRepository
	provider ai.AIProvider
	store    *catalog.Store
	matcher  *search.Matcher
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig      *ai.Config
	searchConfig  *search.Config
	substitutions catalog.SubstitutionTable
	provider      ai.AIProvider
	inMemory      bool
}

// WithAIConfig sets the embedding and extraction service configuration.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithSearchConfig sets the matching parameters.
// Default is search.DefaultConfig().
func WithSearchConfig(cfg search.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.searchConfig = &cfg
	}
}

// WithSubstitutions overlays custom substitution rows on the defaults.
func WithSubstitutions(table catalog.SubstitutionTable) ServiceOption {
	return func(o *serviceOptions) {
		o.substitutions = table
	}
}

// WithProvider replaces the AI provider, bypassing the OpenAI-compatible
// default. Used by tests to inject the mock provider.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps the catalog in memory instead of on disk.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// NewService opens (or creates) the catalog at filePath and wires the
// matching engine over it. An existing catalog is indexed immediately, so
// searches work without a fresh load.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewPartRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
	}

	storeOpts := []catalog.StoreOption{}
	if options.substitutions != nil {
		storeOpts = append(storeOpts, catalog.WithSubstitutions(options.substitutions))
	}
	store, err := catalog.NewStore(repo, provider.Embedder(), storeOpts...)
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	matcherOpts := []search.Option{}
	if options.searchConfig != nil {
		matcherOpts = append(matcherOpts, search.WithConfig(*options.searchConfig))
	}
	matcher, err := search.NewMatcher(store, provider, matcherOpts...)
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	s := &Service{
		backend:  backend,
		repo:     repo,
		provider: provider,
		store:    store,
		matcher:  matcher,
		logger:   slog.Default(),
	}

	// Index whatever the backend already holds.
	if err := store.Reload(context.Background()); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// LoadCatalog replaces the catalog with the given rows and rebuilds the
// search indices.
func (s *Service) LoadCatalog(ctx context.Context, rows []core.CatalogRow) (*catalog.LoadReport, error) {
	return s.store.Load(ctx, rows)
}

// CatalogStats returns summary statistics for the loaded catalog.
func (s *Service) CatalogStats() (*catalog.Stats, error) {
	return s.store.Stats()
}

// Reload rebuilds the search indices from the stored catalog.
func (s *Service) Reload(ctx context.Context) error {
	return s.store.Reload(ctx)
}

// Search returns the fused candidate ranking for one requirement without
// applying the match selector.
func (s *Service) Search(ctx context.Context, req core.Requirement) ([]core.FusedCandidate, error) {
	return s.matcher.Search(ctx, req)
}

// Match resolves one requirement to a match decision.
func (s *Service) Match(ctx context.Context, req core.Requirement) (*core.MatchResult, error) {
	return s.matcher.Match(ctx, req)
}

// NewOrchestrator creates a pipeline orchestrator over this service's
// matcher and extractor.
func (s *Service) NewOrchestrator(opts ...pipeline.Option) (*pipeline.Orchestrator, error) {
	return pipeline.NewOrchestrator(s.matcher, s.provider.RequirementExtractor(), opts...)
}

// RunPipeline runs a full job over pre-extracted requirements. An empty
// jobId gets a generated one.
func (s *Service) RunPipeline(ctx context.Context, jobId string, requirements []core.Requirement, opts ...pipeline.Option) (*core.AssembledOrder, error) {
	if jobId == "" {
		jobId = uuid.NewString()
	}

	orchestrator, err := s.NewOrchestrator(opts...)
	if err != nil {
		return nil, err
	}
	defer orchestrator.Release()

	return orchestrator.Run(ctx, jobId, requirements)
}

// RunDocument extracts requirements from raw purchase-order text and runs a
// full job. An empty jobId gets a generated one.
func (s *Service) RunDocument(ctx context.Context, jobId, document string, opts ...pipeline.Option) (*core.AssembledOrder, error) {
	if jobId == "" {
		jobId = uuid.NewString()
	}

	orchestrator, err := s.NewOrchestrator(opts...)
	if err != nil {
		return nil, err
	}
	defer orchestrator.Release()

	return orchestrator.RunDocument(ctx, jobId, document)
}

// Reembed regenerates every part's description embedding and rebuilds the
// search indices. progress receives human-readable status output.
func (s *Service) Reembed(ctx context.Context, cfg *reembed.Config, progress io.Writer) error {
	reembedder := reembed.NewReembedder(s.repo, s.provider.Embedder(), cfg, progress)
	if err := reembedder.Run(ctx); err != nil {
		return err
	}
	return s.store.Reload(ctx)
}

// Repository exposes the underlying catalog repository.
func (s *Service) Repository() storage.CatalogRepository {
	return s.repo
}

// Store exposes the catalog store.
func (s *Service) Store() *catalog.Store {
	return s.store
}

// Matcher exposes the matcher.
func (s *Service) Matcher() *search.Matcher {
	return s.matcher
}

// Close releases the AI provider, the repository, and the storage backend.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing catalog repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
