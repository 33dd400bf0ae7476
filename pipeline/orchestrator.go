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

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/forgeline/partmatch/ai"
	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/search"
)

// Orchestrator runs purchase-order jobs through the pipeline state machine.
// It fans matching out across requirements on a worker pool and emits a
// progress event at every stage transition.
type Orchestrator struct {
	matcher   *search.Matcher
	extractor ai.RequirementExtractor
	assembler Assembler
	pool      *ants.Pool
	publisher Publisher
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithPoolSize sets the worker pool size for concurrent requirement matching.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}

		if o.pool != nil {
			o.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithPublisher sets the progress event publisher.
// Default is NoopPublisher.
func WithPublisher(publisher Publisher) Option {
	return func(o *Orchestrator) error {
		if publisher == nil {
			publisher = NoopPublisher{}
		}
		o.publisher = publisher
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a pipeline orchestrator. The extractor turns raw
// document text into requirements for RunDocument; Run accepts requirements
// extracted elsewhere.
func NewOrchestrator(matcher *search.Matcher, extractor ai.RequirementExtractor, opts ...Option) (*Orchestrator, error) {
	if matcher == nil {
		return nil, ErrMatcherRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		matcher:   matcher,
		extractor: extractor,
		assembler: Assembler{BorderlineThreshold: matcher.Config().BorderlineThreshold},
		pool:      pool,
		publisher: NoopPublisher{},
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// RunDocument extracts requirements from raw purchase-order text and runs
// the job to completion.
func (o *Orchestrator) RunDocument(ctx context.Context, jobId, document string) (*core.AssembledOrder, error) {
	if jobId == "" {
		return nil, ErrJobIdRequired
	}

	o.publish(jobId, StageReceived, "job received", StageReceived.Percent())

	o.publish(jobId, StageExtracting, "extracting line items", StageExtracting.Percent())
	requirements, err := o.extractor.ExtractRequirements(ctx, document)
	if err != nil {
		return o.fail(jobId, StageExtracting, err)
	}

	return o.run(ctx, jobId, requirements)
}

// Run matches pre-extracted requirements and assembles the order. Every job
// terminates in completed or failed; completed always yields a well-formed
// order, even when no line item matched.
func (o *Orchestrator) Run(ctx context.Context, jobId string, requirements []core.Requirement) (*core.AssembledOrder, error) {
	if jobId == "" {
		return nil, ErrJobIdRequired
	}

	o.publish(jobId, StageReceived, "job received", StageReceived.Percent())
	return o.run(ctx, jobId, requirements)
}

func (o *Orchestrator) run(ctx context.Context, jobId string, requirements []core.Requirement) (*core.AssembledOrder, error) {
	total := len(requirements)
	o.publish(jobId, StageMatching, fmt.Sprintf("matching %d line items", total), StageMatching.Percent())

	results, err := o.matchAll(ctx, jobId, requirements)
	if err != nil {
		return o.fail(jobId, StageMatching, err)
	}

	if err := ctx.Err(); err != nil {
		return o.fail(jobId, StageValidating, err)
	}
	o.publish(jobId, StageValidating, "validating line items", StageValidating.Percent())
	validationIssues := detectDuplicates(requirements)

	if err := ctx.Err(); err != nil {
		return o.fail(jobId, StageAssembling, err)
	}
	o.publish(jobId, StageAssembling, "assembling order", StageAssembling.Percent())
	order := o.assembler.Assemble(jobId, results, validationIssues)

	o.publish(jobId, StageCompleted, order.OrderSummary, StageCompleted.Percent())
	return order, nil
}

// matchAll fans requirement matching out on the worker pool and joins before
// returning. Requirements complete in any order; results keep the input
// order. An error from the matcher itself (catalog unavailable) aborts the
// remaining work and fails the job; per-requirement degradation is already
// folded into each MatchResult.
func (o *Orchestrator) matchAll(ctx context.Context, jobId string, requirements []core.Requirement) ([]core.MatchResult, error) {
	matchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		results   = make([]core.MatchResult, len(requirements))
		completed int
		fatal     error
	)

	for i, req := range requirements {
		wg.Add(1)
		task := func(i int, req core.Requirement) func() {
			return func() {
				defer wg.Done()

				result, err := o.matcher.Match(matchCtx, req)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if fatal == nil {
						fatal = err
						cancel()
					}
					return
				}
				results[i] = *result
				completed++
				o.publish(jobId, StageMatching,
					fmt.Sprintf("matched %d of %d line items", completed, len(requirements)),
					matchingPercent(completed, len(requirements)))
			}
		}(i, req)

		if err := o.pool.Submit(task); err != nil {
			// Pool exhausted or released; degrade to inline execution.
			o.logger.Warn("worker pool submit failed, matching inline", "err", err)
			task()
		}
	}
	wg.Wait()

	if fatal != nil {
		return nil, fatal
	}
	return results, nil
}

func (o *Orchestrator) publish(jobId string, stage Stage, message string, percent int) {
	o.logger.Debug("pipeline stage", "job_id", jobId, "stage", stage, "percent", percent)
	o.publisher.Publish(ProgressEvent{
		JobId:   jobId,
		Stage:   stage,
		Message: message,
		Percent: percent,
	})
}

func (o *Orchestrator) fail(jobId string, stage Stage, cause error) (*core.AssembledOrder, error) {
	o.logger.Error("job failed", "job_id", jobId, "stage", stage, "err", cause)
	o.publish(jobId, StageFailed, fmt.Sprintf("job failed during %s: %v", stage, cause), StageFailed.Percent())
	return nil, fmt.Errorf("%w at stage %s: %w", ErrJobFailed, stage, cause)
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
