package search

import (
	"context"

	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/core"
)

// MaterialStrategy matches on the normalized material grade code. An exact
// grade match scores 1.0; a grade-family match (same base alloy, different
// temper or condition suffix) earns the configured partial credit.
type MaterialStrategy struct{}

// Name implements Strategy.
func (MaterialStrategy) Name() core.StrategyName { return core.StrategyMaterial }

// Search implements Strategy. Requirements without a material attribute
// yield no candidates. The form filter narrows the pool before scoring.
func (s MaterialStrategy) Search(ctx context.Context, req core.Requirement, snap *catalog.Snapshot, cfg Config) ([]core.SearchCandidate, error) {
	grade := catalog.NormalizeGrade(req.Material)
	if grade == "" {
		return nil, nil
	}

	var candidates []core.SearchCandidate
	exact := make(map[string]bool)

	for _, part := range snap.ByMaterial(grade) {
		if !matchesForm(req, part) {
			continue
		}
		exact[part.PartNumber] = true
		candidates = append(candidates, candidate(part, core.StrategyMaterial, 1.0))
	}

	for _, part := range snap.ByFamily(grade) {
		if exact[part.PartNumber] || !matchesForm(req, part) {
			continue
		}
		candidates = append(candidates, candidate(part, core.StrategyMaterial, cfg.FamilyScore))
	}

	sortCandidates(candidates)
	return candidates, nil
}
