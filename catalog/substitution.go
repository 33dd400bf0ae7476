package catalog

// Substitute is one acceptable replacement for a requested grade.
type Substitute struct {
	// Grade is the normalized grade code of the replacement material.
	Grade string
	// Rating grades the suitability of the substitute in (0,1]; a rating of
	// 1.0 means metallurgically interchangeable for common applications.
	Rating float64
	// Note explains the trade-off for reviewers.
	Note string
}

// SubstitutionTable maps a normalized requested grade to its acceptable
// substitutes. Lookups are by exact normalized grade, then by grade family.
type SubstitutionTable map[string][]Substitute

// DefaultSubstitutions returns the built-in engineering substitution table
// for common alloy grades. Entries are symmetric where the substitution is
// acceptable in both directions.
func DefaultSubstitutions() SubstitutionTable {
	return SubstitutionTable{
		// Alloy steels
		"4140": {
			{Grade: "4340", Rating: 0.9, Note: "higher hardenability, higher cost"},
			{Grade: "4142", Rating: 0.95, Note: "slightly higher carbon"},
			{Grade: "8620", Rating: 0.6, Note: "case-hardening grade, lower core strength"},
		},
		"4340": {
			{Grade: "4140", Rating: 0.85, Note: "lower hardenability in heavy sections"},
		},
		"4142": {
			{Grade: "4140", Rating: 0.95, Note: "slightly lower carbon"},
		},
		// Carbon steels
		"1018": {
			{Grade: "1020", Rating: 0.95, Note: "near-equivalent low-carbon grade"},
			{Grade: "A36", Rating: 0.8, Note: "structural grade, wider composition range"},
		},
		"1045": {
			{Grade: "1050", Rating: 0.9, Note: "slightly higher carbon"},
		},
		// Aluminum
		"6061": {
			{Grade: "6063", Rating: 0.8, Note: "lower strength, better finish"},
			{Grade: "5052", Rating: 0.6, Note: "non-heat-treatable, better forming"},
		},
		"6063": {
			{Grade: "6061", Rating: 0.9, Note: "higher strength"},
		},
		"7075": {
			{Grade: "2024", Rating: 0.7, Note: "lower strength, better fatigue"},
		},
		// Stainless
		"304": {
			{Grade: "316", Rating: 0.95, Note: "better corrosion resistance, higher cost"},
			{Grade: "321", Rating: 0.8, Note: "stabilized grade for elevated temperature"},
		},
		"316": {
			{Grade: "304", Rating: 0.7, Note: "reduced chloride resistance"},
		},
		// Brass/bronze
		"C360": {
			{Grade: "C353", Rating: 0.85, Note: "slightly lower machinability"},
		},
	}
}

// For returns the substitutes for a requested grade. Exact normalized grade
// wins; otherwise the grade family entry applies ("6061-T6" falls back to the
// "6061" row). Returns nil when no substitutes are known.
func (t SubstitutionTable) For(grade string) []Substitute {
	normalized := NormalizeGrade(grade)
	if subs, ok := t[normalized]; ok {
		return subs
	}
	if subs, ok := t[GradeFamily(normalized)]; ok {
		return subs
	}
	return nil
}

// Merge overlays other onto the table, replacing rows with the same grade.
// Used to extend or override the defaults from configuration.
func (t SubstitutionTable) Merge(other SubstitutionTable) SubstitutionTable {
	merged := make(SubstitutionTable, len(t)+len(other))
	for grade, subs := range t {
		merged[NormalizeGrade(grade)] = subs
	}
	for grade, subs := range other {
		merged[NormalizeGrade(grade)] = subs
	}
	return merged
}
