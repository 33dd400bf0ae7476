package catalog

import "strings"

// Stop words filtered out of tokenized descriptions and queries
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "and": true, "in": true,
	"for": true, "with": true, "to": true, "by": true, "per": true,
	"need": true, "needs": true, "want": true, "please": true, "also": true,
	"x": true, "inch": true, "inches": true, "in.": true, "ft": true,
	"mm": true, "cm": true, "long": true, "dia": true, "diameter": true,
}

// Tokenize splits text into lowercase alphanumeric tokens and removes stop
// words. Mixed tokens like "6061-T6" split into "6061" and "t6"; pure grade
// codes like "4140" survive intact. Index build and query tokenization must
// both go through here so lexical search compares like with like.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		return !alnum
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == "" || stopWords[field] {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// UniqueTokens tokenizes and deduplicates, preserving first-seen order.
func UniqueTokens(text string) []string {
	tokens := Tokenize(text)
	seen := make(map[string]bool, len(tokens))
	unique := tokens[:0]
	for _, token := range tokens {
		if seen[token] {
			continue
		}
		seen[token] = true
		unique = append(unique, token)
	}
	return unique
}
