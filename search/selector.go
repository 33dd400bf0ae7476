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
	"fmt"
	"strings"

	"github.com/forgeline/partmatch/core"
)

// Select applies the acceptance threshold to a fused ranking and produces
// the match decision for one requirement. The top candidate is accepted only
// when its combined score meets the threshold; otherwise the result is
// no_match with the leading candidates carried as alternatives for review.
//
// A candidate whose only signal is the alternative-material strategy is
// skipped while any other candidate carries a material-grade signal, so a
// substitute is never selected over an available exact or family match.
func Select(req core.Requirement, fused []core.FusedCandidate, cfg Config) core.MatchResult {
	result := core.MatchResult{
		RequirementId: req.Id,
		RawText:       req.RawText,
	}

	if len(fused) == 0 {
		result.Status = core.MatchStatusNoMatch
		result.Reasoning = "no catalog candidates were found by any strategy; the part may not exist in the catalog"
		return result
	}

	topIdx := 0
	if materialSignalExists(fused) {
		for topIdx < len(fused) && alternativeOnly(fused[topIdx]) {
			topIdx++
		}
		if topIdx == len(fused) {
			topIdx = 0
		}
	}
	top := fused[topIdx]

	if top.CombinedScore >= cfg.AcceptThreshold {
		result.Status = core.MatchStatusMatched
		result.SelectedPart = top.PartNumber
		result.Confidence = top.CombinedScore
		result.Reasoning = acceptReasoning(top)
		result.Alternatives = nextBest(fused, topIdx, cfg.MaxAlternatives)
		return result
	}

	result.Status = core.MatchStatusNoMatch
	result.Reasoning = fmt.Sprintf(
		"best candidate %s scored %.2f, below the acceptance threshold %.2f",
		top.PartNumber, top.CombinedScore, cfg.AcceptThreshold)
	if n := min(len(fused), cfg.MaxAlternatives); n > 0 {
		result.Alternatives = fused[:n]
	}
	return result
}

func materialSignalExists(fused []core.FusedCandidate) bool {
	for _, fc := range fused {
		if fc.Breakdown[core.StrategyMaterial] > 0 {
			return true
		}
	}
	return false
}

func alternativeOnly(fc core.FusedCandidate) bool {
	if fc.Breakdown[core.StrategyAlternative] == 0 {
		return false
	}
	for name, score := range fc.Breakdown {
		if name != core.StrategyAlternative && score > 0 {
			return false
		}
	}
	return true
}

// acceptReasoning cites every strategy that contributed a non-zero score to
// the winner, in fusion order, so a reviewer can audit the decision.
func acceptReasoning(top core.FusedCandidate) string {
	var contributions []string
	for _, name := range core.StrategyNames {
		if score := top.Breakdown[name]; score > 0 {
			contributions = append(contributions, fmt.Sprintf("%s %.2f", name, score))
		}
	}
	return fmt.Sprintf("selected %s with combined score %.2f (%s)",
		top.PartNumber, top.CombinedScore, strings.Join(contributions, ", "))
}

func nextBest(fused []core.FusedCandidate, topIdx, limit int) []core.FusedCandidate {
	if limit <= 0 {
		return nil
	}
	alternatives := make([]core.FusedCandidate, 0, limit)
	for i, fc := range fused {
		if i == topIdx {
			continue
		}
		alternatives = append(alternatives, fc)
		if len(alternatives) == limit {
			break
		}
	}
	return alternatives
}
