package search

import (
	"context"
	"strings"

	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/core"
)

// AlternativeStrategy proposes acceptable substitute materials for the
// requested grade using the substitution table. Substitutes always score
// below an exact grade match: the table's suitability rating is discounted
// by the configured penalty.
type AlternativeStrategy struct {
	Table catalog.SubstitutionTable
}

// Name implements Strategy.
func (AlternativeStrategy) Name() core.StrategyName { return core.StrategyAlternative }

// Search implements Strategy. For urgent requirements the search widens from
// exact substitute grades to their whole families, accepting a further
// family-score discount to maximize the chance of in-stock coverage.
func (s AlternativeStrategy) Search(ctx context.Context, req core.Requirement, snap *catalog.Snapshot, cfg Config) ([]core.SearchCandidate, error) {
	grade := catalog.NormalizeGrade(req.Material)
	if grade == "" {
		return nil, nil
	}

	subs := s.Table.For(grade)
	if len(subs) == 0 {
		return nil, nil
	}

	urgent := isUrgent(req.Urgency)
	best := make(map[string]core.SearchCandidate)

	record := func(part *core.PartRecord, score float64) {
		if !matchesForm(req, part) {
			return
		}
		// Never propose the requested grade itself as a substitute.
		if catalog.NormalizeGrade(part.Material) == grade {
			return
		}
		if prev, ok := best[part.PartNumber]; !ok || score > prev.Score {
			best[part.PartNumber] = candidate(part, core.StrategyAlternative, score)
		}
	}

	for _, sub := range subs {
		score := sub.Rating * cfg.SubstitutePenalty
		for _, part := range snap.ByMaterial(sub.Grade) {
			record(part, score)
		}
		if urgent {
			for _, part := range snap.ByFamily(sub.Grade) {
				record(part, score*cfg.FamilyScore)
			}
		}
	}

	candidates := make([]core.SearchCandidate, 0, len(best))
	for _, c := range best {
		candidates = append(candidates, c)
	}
	sortCandidates(candidates)
	return candidates, nil
}

func isUrgent(urgency string) bool {
	switch strings.ToLower(strings.TrimSpace(urgency)) {
	case "urgent", "high", "critical", "asap":
		return true
	}
	return false
}
