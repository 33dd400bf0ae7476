package search

import (
	"context"
	"sort"

	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/core"
)

// Strategy is one independent retrieval algorithm over a catalog snapshot.
// Strategies are stateless with respect to queries: the same snapshot,
// requirement, and config always yield the same candidates. A strategy must
// fail independently; an error means zero candidates from that strategy, and
// never blocks the others.
type Strategy interface {
	// Name identifies the strategy in fused score breakdowns.
	Name() core.StrategyName

	// Search returns candidates ordered by descending score. Scores are
	// in [0,1]. An empty result is a normal outcome, not an error.
	Search(ctx context.Context, req core.Requirement, snap *catalog.Snapshot, cfg Config) ([]core.SearchCandidate, error)
}

// candidate builds a SearchCandidate for a part hit.
func candidate(part *core.PartRecord, name core.StrategyName, score float64) core.SearchCandidate {
	return core.SearchCandidate{
		Part:        part,
		PartNumber:  part.PartNumber,
		Description: part.Description,
		Strategy:    name,
		Score:       score,
	}
}

// sortCandidates orders by descending score, part number ascending on ties.
func sortCandidates(candidates []core.SearchCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].PartNumber < candidates[j].PartNumber
	})
}

// matchesForm reports whether a part passes the requirement's form filter.
// An empty form on either side matches everything; the filter narrows the
// candidate pool before scoring.
func matchesForm(req core.Requirement, part *core.PartRecord) bool {
	want := catalog.NormalizeForm(req.Form)
	if want == "" {
		return true
	}
	have := catalog.NormalizeForm(part.Form)
	return have == "" || have == want
}
