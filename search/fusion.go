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
	"sort"

	"github.com/forgeline/partmatch/core"
)

// Fuse merges per-strategy candidate lists into one ranking. Candidates are
// grouped by part number; the combined score is the weighted sum of each
// strategy's best score for that part, with absent strategies contributing 0.
// Fusion is pure: identical inputs and weights always produce the identical
// ranking. Ties break by higher material score, then higher availability,
// then part number, so the ordering is fully deterministic.
func Fuse(byStrategy map[core.StrategyName][]core.SearchCandidate, weights Weights) []core.FusedCandidate {
	grouped := make(map[string]*core.FusedCandidate)

	for name, candidates := range byStrategy {
		for _, c := range candidates {
			fc, ok := grouped[c.PartNumber]
			if !ok {
				fc = &core.FusedCandidate{
					Part:        c.Part,
					PartNumber:  c.PartNumber,
					Description: c.Description,
					Breakdown:   make(map[core.StrategyName]float64, len(core.StrategyNames)),
				}
				grouped[c.PartNumber] = fc
			}
			if c.Score > fc.Breakdown[name] {
				fc.Breakdown[name] = c.Score
			}
		}
	}

	fused := make([]core.FusedCandidate, 0, len(grouped))
	for _, fc := range grouped {
		var combined float64
		for name, score := range fc.Breakdown {
			combined += weights.For(name) * score
		}
		fc.CombinedScore = combined
		fused = append(fused, *fc)
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].CombinedScore != fused[j].CombinedScore {
			return fused[i].CombinedScore > fused[j].CombinedScore
		}
		mi, mj := fused[i].Breakdown[core.StrategyMaterial], fused[j].Breakdown[core.StrategyMaterial]
		if mi != mj {
			return mi > mj
		}
		ai, aj := availability(fused[i]), availability(fused[j])
		if ai != aj {
			return ai > aj
		}
		return fused[i].PartNumber < fused[j].PartNumber
	})

	return fused
}

func availability(fc core.FusedCandidate) int64 {
	if fc.Part == nil {
		return 0
	}
	return fc.Part.Availability
}
