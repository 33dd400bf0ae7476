package search

import "github.com/forgeline/partmatch/core"

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps and results while a
// requirement is matched.
type MatchMonitor interface {
	Start(req core.Requirement)
	AfterStrategy(name core.StrategyName, candidates []core.SearchCandidate, err error)
	AfterFusion(fused []core.FusedCandidate)
	Finish(result *core.MatchResult)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.Requirement)                                            {}
func (n *noopMonitor) AfterStrategy(_ core.StrategyName, _ []core.SearchCandidate, _ error) {}
func (n *noopMonitor) AfterFusion(_ []core.FusedCandidate)                                 {}
func (n *noopMonitor) Finish(_ *core.MatchResult)                                          {}
