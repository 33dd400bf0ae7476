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
	"math"

	"github.com/forgeline/partmatch/core"
)

// Weights are the per-strategy fusion weights. They must be non-negative and
// sum to 1.0 so a candidate scored 1.0 by every strategy fuses to exactly 1.0.
type Weights struct {
	Fuzzy       float64
	Material    float64
	Alternative float64
	Semantic    float64
}

// DefaultWeights favors the material signal, which is the most reliable
// discriminator for stock metals, with lexical matching second.
func DefaultWeights() Weights {
	return Weights{
		Fuzzy:       0.30,
		Material:    0.40,
		Alternative: 0.10,
		Semantic:    0.20,
	}
}

// For returns the weight for a strategy, 0 for unknown names.
func (w Weights) For(name core.StrategyName) float64 {
	switch name {
	case core.StrategyFuzzy:
		return w.Fuzzy
	case core.StrategyMaterial:
		return w.Material
	case core.StrategyAlternative:
		return w.Alternative
	case core.StrategySemantic:
		return w.Semantic
	}
	return 0
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Fuzzy + w.Material + w.Alternative + w.Semantic
}

// Config holds the tunable matching parameters. The acceptance threshold and
// fusion weights are deployment knobs, not constants; callers load them from
// configuration and pass them in.
type Config struct {
	// Weights are the fusion weights per strategy.
	Weights Weights

	// AcceptThreshold is the minimum combined score for a match to be
	// accepted. Below it the requirement resolves to no_match.
	AcceptThreshold float64

	// BorderlineThreshold is the auto-approve bar. Accepted matches with
	// confidence in [AcceptThreshold, BorderlineThreshold) are flagged for
	// human sign-off during assembly.
	BorderlineThreshold float64

	// MaxAlternatives bounds the next-best candidates carried on a result.
	MaxAlternatives int

	// FuzzyMinSimilarity is the similarity floor for the fuzzy strategy.
	FuzzyMinSimilarity float64

	// FamilyScore is the partial credit for a grade-family match when the
	// exact grade differs (same base alloy, different temper).
	FamilyScore float64

	// SubstitutePenalty discounts substitute-material scores relative to the
	// substitution table's own suitability rating.
	SubstitutePenalty float64

	// SemanticThreshold is the minimum cosine similarity for a semantic hit.
	SemanticThreshold float64

	// SemanticTopK caps the number of semantic candidates per requirement.
	SemanticTopK int
}

// DefaultConfig returns the default matching parameters.
func DefaultConfig() Config {
	return Config{
		Weights:             DefaultWeights(),
		AcceptThreshold:     0.60,
		BorderlineThreshold: 0.75,
		MaxAlternatives:     3,
		FuzzyMinSimilarity:  0.55,
		FamilyScore:         0.75,
		SubstitutePenalty:   0.80,
		SemanticThreshold:   0.35,
		SemanticTopK:        10,
	}
}

const weightSumTolerance = 1e-9

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	for _, w := range []float64{c.Weights.Fuzzy, c.Weights.Material, c.Weights.Alternative, c.Weights.Semantic} {
		if w < 0 {
			return ErrInvalidWeights
		}
	}
	if math.Abs(c.Weights.Sum()-1.0) > weightSumTolerance {
		return ErrInvalidWeights
	}
	if c.AcceptThreshold < 0 || c.BorderlineThreshold > 1 || c.AcceptThreshold > c.BorderlineThreshold {
		return ErrInvalidThreshold
	}
	if c.MaxAlternatives < 0 {
		return fmt.Errorf("max alternatives must be non-negative, got %d", c.MaxAlternatives)
	}
	if c.FuzzyMinSimilarity < 0 || c.FuzzyMinSimilarity > 1 {
		return fmt.Errorf("fuzzy similarity floor must lie in [0,1], got %v", c.FuzzyMinSimilarity)
	}
	if c.FamilyScore < 0 || c.FamilyScore > 1 {
		return fmt.Errorf("family score must lie in [0,1], got %v", c.FamilyScore)
	}
	if c.SubstitutePenalty < 0 || c.SubstitutePenalty > 1 {
		return fmt.Errorf("substitute penalty must lie in [0,1], got %v", c.SubstitutePenalty)
	}
	if c.SemanticThreshold < 0 || c.SemanticThreshold > 1 {
		return fmt.Errorf("semantic threshold must lie in [0,1], got %v", c.SemanticThreshold)
	}
	if c.SemanticTopK <= 0 {
		return fmt.Errorf("semantic top-k must be positive, got %d", c.SemanticTopK)
	}
	return nil
}
