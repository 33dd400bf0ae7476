package catalog

import "strings"

// NormalizeGrade canonicalizes a material or grade code for index lookup:
// uppercase, trimmed, internal whitespace removed.
// "6061 - t6" and "6061-T6" normalize to the same key.
func NormalizeGrade(material string) string {
	material = strings.ToUpper(strings.TrimSpace(material))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, material)
}

// GradeFamily derives the base alloy family from a normalized grade code.
// The family is the grade root before any temper or condition suffix:
// "6061-T6" -> "6061", "304L" -> "304", "4140" -> "4140".
// Short hyphenated grades like "17-4" are kept whole; the hyphen is part of
// the designation, not a temper separator.
func GradeFamily(grade string) string {
	grade = NormalizeGrade(grade)
	if grade == "" {
		return ""
	}

	if idx := strings.IndexByte(grade, '-'); idx > 2 {
		grade = grade[:idx]
	}

	// Strip a trailing letter suffix from numeric roots (304L, 316LN).
	if grade[0] >= '0' && grade[0] <= '9' {
		end := len(grade)
		for end > 0 {
			c := grade[end-1]
			if c >= 'A' && c <= 'Z' {
				end--
				continue
			}
			break
		}
		if end > 0 {
			grade = grade[:end]
		}
	}

	return grade
}

// NormalizeForm canonicalizes a stock form for filtering: lowercase, trimmed,
// with common synonyms folded ("round bar" -> "bar", "tubing" -> "tube").
func NormalizeForm(form string) string {
	form = strings.ToLower(strings.TrimSpace(form))
	switch form {
	case "round bar", "flat bar", "square bar", "hex bar":
		return "bar"
	case "rod":
		return "bar"
	case "tubing":
		return "tube"
	case "piping":
		return "pipe"
	case "sheet metal":
		return "sheet"
	}
	return form
}
