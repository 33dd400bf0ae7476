package search

import (
	"context"
	"fmt"

	"github.com/forgeline/partmatch/ai"
	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/core"
)

// SemanticStrategy ranks parts by cosine similarity between the embedded
// requirement text and each part's stored description vector.
type SemanticStrategy struct {
	Embedder ai.Embedder
}

// Name implements Strategy.
func (SemanticStrategy) Name() core.StrategyName { return core.StrategySemantic }

// Search implements Strategy. A catalog loaded without vectors yields an
// empty result, not an error; only an embedding failure for the query itself
// is reported, and the matcher degrades that to zero semantic candidates.
func (s SemanticStrategy) Search(ctx context.Context, req core.Requirement, snap *catalog.Snapshot, cfg Config) ([]core.SearchCandidate, error) {
	entries := snap.Vectors()
	if len(entries) == 0 {
		return nil, nil
	}

	query, err := s.Embedder.EmbedText(ctx, req.RawText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed requirement text: %w", err)
	}

	candidates := make([]core.SearchCandidate, 0, cfg.SemanticTopK)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Normalizing on the fly tolerates vectors persisted before the
		// load path started normalizing them.
		sim := float64(core.CosineSimilarity(query, entry.Vector))
		if sim > 1 {
			sim = 1
		}
		if sim >= cfg.SemanticThreshold {
			candidates = append(candidates, candidate(entry.Part, core.StrategySemantic, sim))
		}
	}

	sortCandidates(candidates)
	if len(candidates) > cfg.SemanticTopK {
		candidates = candidates[:cfg.SemanticTopK]
	}
	return candidates, nil
}
