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

// Package config loads the matching configuration from YAML. Thresholds and
// fusion weights are deployment knobs: unset fields fall back to the search
// package defaults, so a partial file only overrides what it names.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forgeline/partmatch/ai"
	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/search"
)

// Weights mirrors the per-strategy fusion weights in YAML.
type Weights struct {
	Fuzzy       float64 `yaml:"fuzzy"`
	Material    float64 `yaml:"material"`
	Alternative float64 `yaml:"alternative"`
	Semantic    float64 `yaml:"semantic"`
}

// Matching holds the tunable matching parameters. Pointer fields distinguish
// "absent" from an explicit zero.
type Matching struct {
	Weights             *Weights `yaml:"weights"`
	AcceptThreshold     *float64 `yaml:"accept_threshold"`
	BorderlineThreshold *float64 `yaml:"borderline_threshold"`
	MaxAlternatives     *int     `yaml:"max_alternatives"`
	FuzzyMinSimilarity  *float64 `yaml:"fuzzy_min_similarity"`
	FamilyScore         *float64 `yaml:"family_score"`
	SubstitutePenalty   *float64 `yaml:"substitute_penalty"`
	SemanticThreshold   *float64 `yaml:"semantic_threshold"`
	SemanticTopK        *int     `yaml:"semantic_top_k"`
}

// Substitute is one substitution table row in YAML.
type Substitute struct {
	Grade  string  `yaml:"grade"`
	Rating float64 `yaml:"rating"`
	Note   string  `yaml:"note"`
}

// AI holds the embedding and extraction service settings.
type AI struct {
	Host           string `yaml:"host"`
	EmbeddingModel string `yaml:"embedding_model"`
	ExtractorModel string `yaml:"extractor_model"`
	MaxLineItems   int    `yaml:"max_line_items"`
}

// File is the on-disk configuration document.
type File struct {
	Matching      Matching                `yaml:"matching"`
	Substitutions map[string][]Substitute `yaml:"substitutions"`
	AI            AI                      `yaml:"ai"`
	PoolSize      int                     `yaml:"pool_size"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &f, nil
}

// SearchConfig overlays the file's matching parameters on the defaults and
// validates the result.
func (f *File) SearchConfig() (search.Config, error) {
	cfg := search.DefaultConfig()

	m := f.Matching
	if m.Weights != nil {
		cfg.Weights = search.Weights{
			Fuzzy:       m.Weights.Fuzzy,
			Material:    m.Weights.Material,
			Alternative: m.Weights.Alternative,
			Semantic:    m.Weights.Semantic,
		}
	}
	if m.AcceptThreshold != nil {
		cfg.AcceptThreshold = *m.AcceptThreshold
	}
	if m.BorderlineThreshold != nil {
		cfg.BorderlineThreshold = *m.BorderlineThreshold
	}
	if m.MaxAlternatives != nil {
		cfg.MaxAlternatives = *m.MaxAlternatives
	}
	if m.FuzzyMinSimilarity != nil {
		cfg.FuzzyMinSimilarity = *m.FuzzyMinSimilarity
	}
	if m.FamilyScore != nil {
		cfg.FamilyScore = *m.FamilyScore
	}
	if m.SubstitutePenalty != nil {
		cfg.SubstitutePenalty = *m.SubstitutePenalty
	}
	if m.SemanticThreshold != nil {
		cfg.SemanticThreshold = *m.SemanticThreshold
	}
	if m.SemanticTopK != nil {
		cfg.SemanticTopK = *m.SemanticTopK
	}

	if err := cfg.Validate(); err != nil {
		return search.Config{}, err
	}
	return cfg, nil
}

// SubstitutionTable converts the file's substitution rows, if any, to the
// catalog's table form. Returns nil when the file defines none, letting the
// caller keep the built-in defaults.
func (f *File) SubstitutionTable() catalog.SubstitutionTable {
	if len(f.Substitutions) == 0 {
		return nil
	}

	table := make(catalog.SubstitutionTable, len(f.Substitutions))
	for grade, rows := range f.Substitutions {
		subs := make([]catalog.Substitute, 0, len(rows))
		for _, row := range rows {
			subs = append(subs, catalog.Substitute{
				Grade:  catalog.NormalizeGrade(row.Grade),
				Rating: row.Rating,
				Note:   row.Note,
			})
		}
		table[catalog.NormalizeGrade(grade)] = subs
	}
	return table
}

// AIOptions converts the file's AI section to provider configuration
// options. Unset fields keep the provider defaults.
func (f *File) AIOptions() []ai.ConfigOption {
	var opts []ai.ConfigOption
	if f.AI.Host != "" {
		opts = append(opts, ai.WithHost(f.AI.Host))
	}
	if f.AI.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(f.AI.EmbeddingModel))
	}
	if f.AI.ExtractorModel != "" {
		opts = append(opts, ai.WithExtractorModel(f.AI.ExtractorModel))
	}
	if f.AI.MaxLineItems > 0 {
		opts = append(opts, ai.WithMaxLineItems(f.AI.MaxLineItems))
	}
	return opts
}
