package search

import (
	"context"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/core"
)

// Jaro-Winkler parameters: standard prefix boost and length.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// nearTokenSimilarity is the per-token similarity above which two tokens are
// treated as the same word for overlap scoring (typo tolerance).
const nearTokenSimilarity = 0.85

// FuzzyStrategy matches requirement text against part descriptions and part
// numbers by token overlap with Jaro-Winkler typo tolerance.
type FuzzyStrategy struct{}

// Name implements Strategy.
func (FuzzyStrategy) Name() core.StrategyName { return core.StrategyFuzzy }

// Search implements Strategy. The candidate pool comes from the snapshot's
// token index; when no token hits at all (heavily misspelled input), it falls
// back to a full scan so pure similarity can still surface candidates.
func (s FuzzyStrategy) Search(ctx context.Context, req core.Requirement, snap *catalog.Snapshot, cfg Config) ([]core.SearchCandidate, error) {
	tokens := catalog.UniqueTokens(req.RawText)
	if len(tokens) == 0 {
		return nil, nil
	}

	pool := make(map[string]*core.PartRecord)
	for _, token := range tokens {
		for _, part := range snap.ByToken(token) {
			pool[part.PartNumber] = part
		}
	}

	var parts []*core.PartRecord
	if len(pool) > 0 {
		parts = make([]*core.PartRecord, 0, len(pool))
		for _, part := range pool {
			parts = append(parts, part)
		}
	} else {
		parts = snap.Parts()
	}

	candidates := make([]core.SearchCandidate, 0, len(parts))
	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score := fuzzyScore(tokens, part)
		if score >= cfg.FuzzyMinSimilarity {
			candidates = append(candidates, candidate(part, core.StrategyFuzzy, score))
		}
	}

	sortCandidates(candidates)
	return candidates, nil
}

// fuzzyScore is the better of two signals: similarity of any query token to
// the part number, and the fraction of query tokens found (or near-found) in
// the description.
func fuzzyScore(tokens []string, part *core.PartRecord) float64 {
	partNumber := strings.ToLower(part.PartNumber)

	var best float64
	for _, token := range tokens {
		if sim := smetrics.JaroWinkler(token, partNumber, jwBoostThreshold, jwPrefixSize); sim > best {
			best = sim
		}
	}

	descTokens := catalog.UniqueTokens(part.Description)
	if len(descTokens) > 0 {
		var matched float64
		for _, token := range tokens {
			var tokenBest float64
			for _, descToken := range descTokens {
				if token == descToken {
					tokenBest = 1.0
					break
				}
				if sim := smetrics.JaroWinkler(token, descToken, jwBoostThreshold, jwPrefixSize); sim > tokenBest {
					tokenBest = sim
				}
			}
			if tokenBest >= nearTokenSimilarity {
				matched += tokenBest
			}
		}
		if overlap := matched / float64(len(tokens)); overlap > best {
			best = overlap
		}
	}

	if best > 1.0 {
		best = 1.0
	}
	return best
}
