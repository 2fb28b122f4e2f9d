package index

import (
	"maps"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/tokenizer"
)

// DocumentStats is the term-frequency statistic of one indexed document.
// Length always equals the sum of the Terms counts.
type DocumentStats struct {
	Terms  map[string]int `json:"terms"`
	Length int            `json:"length"`
}

// Analyze tokenizes text and counts every term occurrence.
func Analyze(text string) DocumentStats {
	tokens := tokenizer.Tokenize(text)
	terms := make(map[string]int)
	for _, token := range tokens {
		terms[token.Term]++
	}
	return DocumentStats{
		Terms:  terms,
		Length: len(tokens),
	}
}

// Frequency returns how often term occurs in the document, or 0.
func (d DocumentStats) Frequency(term string) int {
	return d.Terms[term]
}

func (d DocumentStats) Contains(term string) bool {
	_, ok := d.Terms[term]
	return ok
}

func (d DocumentStats) clone() DocumentStats {
	terms := make(map[string]int, len(d.Terms))
	maps.Copy(terms, d.Terms)
	return DocumentStats{Terms: terms, Length: d.Length}
}

func (d DocumentStats) equal(other DocumentStats) bool {
	return d.Length == other.Length && maps.Equal(d.Terms, other.Terms)
}
