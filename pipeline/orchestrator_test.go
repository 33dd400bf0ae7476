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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeline/partmatch/ai/mock"
	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/search"
	"github.com/forgeline/partmatch/storage/badger"
)

func newTestMatcher(t *testing.T, load bool) *search.Matcher {
	t.Helper()

	provider := mock.NewMockProvider()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	store, err := catalog.NewStore(repo, provider.Embedder())
	require.NoError(t, err)

	if load {
		rows := []core.CatalogRow{
			{
				PartNumber:   "SB-4140-2-36",
				Description:  "4140 Alloy Steel Round Bar 2in x 36in",
				Material:     "4140",
				Form:         "bar",
				UnitPrice:    "42.50",
				Availability: 120,
			},
			{
				PartNumber:   "SH-6061-T6-1",
				Description:  "6061-T6 Aluminum Sheet 0.063in x 48in x 96in",
				Material:     "6061-T6",
				Form:         "sheet",
				UnitPrice:    "18.00",
				Availability: 40,
			},
		}
		_, err = store.Load(context.Background(), rows)
		require.NoError(t, err)
	}

	matcher, err := search.NewMatcher(store, provider)
	require.NoError(t, err)
	return matcher
}

func testRequirements() []core.Requirement {
	return []core.Requirement{
		{Id: 100, RawText: "4140 steel round bar 2 inch", Material: "4140", Form: "bar", Quantity: 10},
		{Id: 101, RawText: "9999-X widget bracket", Quantity: 2},
	}
}

func TestNewOrchestrator(t *testing.T) {
	matcher := newTestMatcher(t, true)
	extractor := mock.NewMockRequirementExtractor()

	t.Run("requires a matcher", func(t *testing.T) {
		_, err := NewOrchestrator(nil, extractor)
		assert.ErrorIs(t, err, ErrMatcherRequired)
	})

	t.Run("requires an extractor", func(t *testing.T) {
		_, err := NewOrchestrator(matcher, nil)
		assert.ErrorIs(t, err, ErrExtractorRequired)
	})

	t.Run("pool size has a floor of one", func(t *testing.T) {
		o, err := NewOrchestrator(matcher, extractor, WithPoolSize(-3))
		require.NoError(t, err)
		defer o.Release()
		assert.Equal(t, 1, o.pool.Cap())
	})
}

func TestOrchestratorRun(t *testing.T) {
	ctx := context.Background()

	t.Run("job runs to completion", func(t *testing.T) {
		o, err := NewOrchestrator(newTestMatcher(t, true), mock.NewMockRequirementExtractor())
		require.NoError(t, err)
		defer o.Release()

		order, err := o.Run(ctx, "job-1", testRequirements())
		require.NoError(t, err)

		assert.Equal(t, "job-1", order.JobId)
		assert.Equal(t, 2, order.Totals.TotalLineItems)
		assert.Equal(t, 1, order.Totals.MatchedItems)
		assert.Equal(t, 1, order.Totals.NoMatchItems)
		assert.Equal(t, 0, order.Totals.ErrorItems)
		assert.Equal(t, core.MatchStatusMatched, order.LineItems[0].Status)
		assert.Equal(t, "SB-4140-2-36", order.LineItems[0].SelectedPart)
		assert.Equal(t, core.MatchStatusNoMatch, order.LineItems[1].Status)
	})

	t.Run("results keep the input order across the pool", func(t *testing.T) {
		o, err := NewOrchestrator(newTestMatcher(t, true), mock.NewMockRequirementExtractor(), WithPoolSize(4))
		require.NoError(t, err)
		defer o.Release()

		requirements := make([]core.Requirement, 0, 8)
		for i := 0; i < 4; i++ {
			requirements = append(requirements, testRequirements()...)
		}
		order, err := o.Run(ctx, "job-2", requirements)
		require.NoError(t, err)

		require.Len(t, order.LineItems, 8)
		for i, item := range order.LineItems {
			assert.Equal(t, requirements[i].Id, item.RequirementId)
		}
	})

	t.Run("progress percent never decreases", func(t *testing.T) {
		publisher := NewChannelPublisher(64, nil)
		o, err := NewOrchestrator(newTestMatcher(t, true), mock.NewMockRequirementExtractor(),
			WithPublisher(publisher))
		require.NoError(t, err)
		defer o.Release()

		_, err = o.Run(ctx, "job-3", testRequirements())
		require.NoError(t, err)
		publisher.Close()

		var events []ProgressEvent
		for event := range publisher.Events() {
			events = append(events, event)
		}
		require.NotEmpty(t, events)

		assert.Equal(t, StageReceived, events[0].Stage)
		last := events[len(events)-1]
		assert.Equal(t, StageCompleted, last.Stage)
		assert.Equal(t, 100, last.Percent)

		previous := 0
		for _, event := range events {
			assert.GreaterOrEqual(t, event.Percent, previous,
				"percent regressed at stage %s", event.Stage)
			previous = event.Percent
		}
	})

	t.Run("rejects an empty job id", func(t *testing.T) {
		o, err := NewOrchestrator(newTestMatcher(t, true), mock.NewMockRequirementExtractor())
		require.NoError(t, err)
		defer o.Release()

		_, err = o.Run(ctx, "", testRequirements())
		assert.ErrorIs(t, err, ErrJobIdRequired)
	})

	t.Run("unloaded catalog fails the job at matching", func(t *testing.T) {
		publisher := NewChannelPublisher(16, nil)
		o, err := NewOrchestrator(newTestMatcher(t, false), mock.NewMockRequirementExtractor(),
			WithPublisher(publisher))
		require.NoError(t, err)
		defer o.Release()

		_, err = o.Run(ctx, "job-4", testRequirements())
		assert.ErrorIs(t, err, ErrJobFailed)
		assert.ErrorIs(t, err, catalog.ErrNotLoaded)

		publisher.Close()
		var last ProgressEvent
		for event := range publisher.Events() {
			last = event
		}
		assert.Equal(t, StageFailed, last.Stage)
	})

	t.Run("empty requirement list still completes", func(t *testing.T) {
		o, err := NewOrchestrator(newTestMatcher(t, true), mock.NewMockRequirementExtractor())
		require.NoError(t, err)
		defer o.Release()

		order, err := o.Run(ctx, "job-5", nil)
		require.NoError(t, err)
		assert.Equal(t, 0, order.Totals.TotalLineItems)
	})
}

func TestOrchestratorRunDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts and matches a document", func(t *testing.T) {
		extractor := mock.NewMockRequirementExtractor()
		extractor.ExtractRequirementsFunc = func(ctx context.Context, text string) ([]core.Requirement, error) {
			return testRequirements(), nil
		}

		o, err := NewOrchestrator(newTestMatcher(t, true), extractor)
		require.NoError(t, err)
		defer o.Release()

		order, err := o.RunDocument(ctx, "job-6", "PO-2026-0831\n10x 4140 steel round bar 2 inch\n2x 9999-X widget bracket")
		require.NoError(t, err)
		assert.Equal(t, 2, order.Totals.TotalLineItems)
		assert.Equal(t, 1, order.Totals.MatchedItems)
	})

	t.Run("extraction failure fails the job", func(t *testing.T) {
		extractor := mock.NewMockRequirementExtractor()
		extractor.ExtractRequirementsFunc = func(ctx context.Context, text string) ([]core.Requirement, error) {
			return nil, errors.New("model timeout")
		}

		o, err := NewOrchestrator(newTestMatcher(t, true), extractor)
		require.NoError(t, err)
		defer o.Release()

		_, err = o.RunDocument(ctx, "job-7", "unreadable scan")
		assert.ErrorIs(t, err, ErrJobFailed)
		assert.ErrorContains(t, err, "model timeout")
		assert.ErrorContains(t, err, string(StageExtracting))
	})
}
