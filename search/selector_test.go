package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeline/partmatch/core"
)

func fusedRanking() []core.FusedCandidate {
	return []core.FusedCandidate{
		{
			PartNumber:    "SB-4140-2-36",
			CombinedScore: 0.64,
			Breakdown: map[core.StrategyName]float64{
				core.StrategyFuzzy:    0.8,
				core.StrategyMaterial: 1.0,
			},
		},
		{
			PartNumber:    "SB-4340-2-36",
			CombinedScore: 0.45,
			Breakdown: map[core.StrategyName]float64{
				core.StrategyFuzzy:    0.7,
				core.StrategyMaterial: 0.75,
			},
		},
		{
			PartNumber:    "SB-8620-2-36",
			CombinedScore: 0.20,
			Breakdown: map[core.StrategyName]float64{
				core.StrategyFuzzy: 0.55,
			},
		},
	}
}

func TestSelect(t *testing.T) {
	req := core.Requirement{Id: 1, RawText: "4140 steel round bar 2 inch"}
	cfg := DefaultConfig()

	t.Run("accepts top candidate at or above threshold", func(t *testing.T) {
		result := Select(req, fusedRanking(), cfg)

		assert.Equal(t, core.MatchStatusMatched, result.Status)
		assert.Equal(t, "SB-4140-2-36", result.SelectedPart)
		assert.Equal(t, 0.64, result.Confidence)
		assert.Equal(t, req.Id, result.RequirementId)
		assert.Equal(t, req.RawText, result.RawText)
	})

	t.Run("reasoning cites every contributing strategy", func(t *testing.T) {
		result := Select(req, fusedRanking(), cfg)

		assert.Contains(t, result.Reasoning, "SB-4140-2-36")
		assert.Contains(t, result.Reasoning, "fuzzy 0.80")
		assert.Contains(t, result.Reasoning, "material 1.00")
		assert.NotContains(t, result.Reasoning, "semantic")
	})

	t.Run("alternatives exclude the winner", func(t *testing.T) {
		result := Select(req, fusedRanking(), cfg)

		require.Len(t, result.Alternatives, 2)
		assert.Equal(t, "SB-4340-2-36", result.Alternatives[0].PartNumber)
		assert.Equal(t, "SB-8620-2-36", result.Alternatives[1].PartNumber)
	})

	t.Run("rejects below threshold and keeps alternatives for review", func(t *testing.T) {
		strict := cfg
		strict.AcceptThreshold = 0.9

		result := Select(req, fusedRanking(), strict)

		assert.Equal(t, core.MatchStatusNoMatch, result.Status)
		assert.Empty(t, result.SelectedPart)
		assert.Zero(t, result.Confidence)
		assert.Contains(t, result.Reasoning, "below the acceptance threshold 0.90")
		require.Len(t, result.Alternatives, 3)
		assert.Equal(t, "SB-4140-2-36", result.Alternatives[0].PartNumber)
	})

	t.Run("raising the threshold never flips no_match back to matched", func(t *testing.T) {
		matched := true
		for threshold := 0.0; threshold <= 1.0; threshold += 0.05 {
			trial := cfg
			trial.AcceptThreshold = threshold
			result := Select(req, fusedRanking(), trial)
			if result.Status == core.MatchStatusMatched {
				assert.True(t, matched, "matched again at threshold %.2f after a rejection", threshold)
			} else {
				matched = false
			}
		}
		assert.False(t, matched)
	})

	t.Run("empty ranking yields a distinct no_match reason", func(t *testing.T) {
		result := Select(req, nil, cfg)

		assert.Equal(t, core.MatchStatusNoMatch, result.Status)
		assert.Zero(t, result.Confidence)
		assert.Empty(t, result.Alternatives)
		assert.Contains(t, result.Reasoning, "no catalog candidates were found by any strategy")
	})

	t.Run("caps alternatives at the configured limit", func(t *testing.T) {
		capped := cfg
		capped.MaxAlternatives = 1

		result := Select(req, fusedRanking(), capped)
		assert.Len(t, result.Alternatives, 1)
	})
}

func TestSelectAlternativeSuppression(t *testing.T) {
	req := core.Requirement{Id: 2, RawText: "4140 bar"}
	cfg := DefaultConfig()

	t.Run("substitute never beats a candidate with a material signal", func(t *testing.T) {
		fused := []core.FusedCandidate{
			{
				PartNumber:    "SB-4340-2-36",
				CombinedScore: 0.72,
				Breakdown: map[core.StrategyName]float64{
					core.StrategyAlternative: 0.72,
				},
			},
			{
				PartNumber:    "SB-4140-2-36",
				CombinedScore: 0.64,
				Breakdown: map[core.StrategyName]float64{
					core.StrategyFuzzy:    0.8,
					core.StrategyMaterial: 1.0,
				},
			},
		}

		result := Select(req, fused, cfg)

		assert.Equal(t, core.MatchStatusMatched, result.Status)
		assert.Equal(t, "SB-4140-2-36", result.SelectedPart)
		require.Len(t, result.Alternatives, 1)
		assert.Equal(t, "SB-4340-2-36", result.Alternatives[0].PartNumber)
	})

	t.Run("substitute wins when nothing else carries a material signal", func(t *testing.T) {
		fused := []core.FusedCandidate{
			{
				PartNumber:    "SB-4340-2-36",
				CombinedScore: 0.72,
				Breakdown: map[core.StrategyName]float64{
					core.StrategyAlternative: 0.72,
				},
			},
			{
				PartNumber:    "SB-8620-2-36",
				CombinedScore: 0.3,
				Breakdown: map[core.StrategyName]float64{
					core.StrategyFuzzy: 0.6,
				},
			},
		}

		result := Select(req, fused, cfg)

		assert.Equal(t, core.MatchStatusMatched, result.Status)
		assert.Equal(t, "SB-4340-2-36", result.SelectedPart)
	})
}
