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

package catalog

import (
	"sort"

	"github.com/forgeline/partmatch/core"
)

// VectorEntry pairs a part with its normalized embedding for similarity scans.
type VectorEntry struct {
	Part   *core.PartRecord
	Vector []float32
}

// Snapshot is an immutable view of the loaded catalog with derived indices.
// A snapshot is built once via NewSnapshot and never mutated; the store swaps
// whole snapshots atomically so readers are never exposed to a partially
// built index.
type Snapshot struct {
	parts      map[string]*core.PartRecord
	ordered    []*core.PartRecord
	tokenIndex map[string][]*core.PartRecord
	materials  map[string][]*core.PartRecord
	families   map[string][]*core.PartRecord
	vectors    []VectorEntry
}

// NewSnapshot builds a snapshot with all derived indices from the given
// parts. Later duplicates of a part number are ignored.
func NewSnapshot(parts []*core.PartRecord) *Snapshot {
	snap := &Snapshot{
		parts:      make(map[string]*core.PartRecord, len(parts)),
		ordered:    make([]*core.PartRecord, 0, len(parts)),
		tokenIndex: make(map[string][]*core.PartRecord),
		materials:  make(map[string][]*core.PartRecord),
		families:   make(map[string][]*core.PartRecord),
	}

	for _, part := range parts {
		if _, exists := snap.parts[part.PartNumber]; exists {
			continue
		}
		snap.parts[part.PartNumber] = part
		snap.ordered = append(snap.ordered, part)

		for _, token := range UniqueTokens(part.Description + " " + part.PartNumber) {
			snap.tokenIndex[token] = append(snap.tokenIndex[token], part)
		}

		grade := NormalizeGrade(part.Material)
		if grade != "" {
			snap.materials[grade] = append(snap.materials[grade], part)
			family := GradeFamily(grade)
			snap.families[family] = append(snap.families[family], part)
		}

		if len(part.Vector) > 0 {
			snap.vectors = append(snap.vectors, VectorEntry{Part: part, Vector: part.Vector})
		}
	}

	sort.Slice(snap.ordered, func(i, j int) bool {
		return snap.ordered[i].PartNumber < snap.ordered[j].PartNumber
	})

	return snap
}

// Part returns the part with the given part number, or nil.
func (s *Snapshot) Part(partNumber string) *core.PartRecord {
	return s.parts[partNumber]
}

// Parts returns all parts ordered by part number. Callers must not mutate
// the returned slice.
func (s *Snapshot) Parts() []*core.PartRecord {
	return s.ordered
}

// Len returns the number of parts in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.ordered)
}

// ByToken returns parts whose description or part number contains the token.
func (s *Snapshot) ByToken(token string) []*core.PartRecord {
	return s.tokenIndex[token]
}

// ByMaterial returns parts whose normalized material grade matches exactly.
func (s *Snapshot) ByMaterial(grade string) []*core.PartRecord {
	return s.materials[NormalizeGrade(grade)]
}

// ByFamily returns parts whose material belongs to the given grade family.
func (s *Snapshot) ByFamily(grade string) []*core.PartRecord {
	return s.families[GradeFamily(NormalizeGrade(grade))]
}

// Vectors returns the embedded parts for similarity scans. Parts loaded
// without vectors are absent.
func (s *Snapshot) Vectors() []VectorEntry {
	return s.vectors
}

// Materials returns the distinct normalized grades present in the snapshot.
func (s *Snapshot) Materials() []string {
	grades := make([]string, 0, len(s.materials))
	for grade := range s.materials {
		grades = append(grades, grade)
	}
	sort.Strings(grades)
	return grades
}
