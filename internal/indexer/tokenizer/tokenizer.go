// Package tokenizer provides text tokenisation for the document ranker.
// It splits input on runs of whitespace and lower-cases every token.
// Punctuation stays attached to the token it appears in; there is no
// stemming and no stop-word removal.
package tokenizer

import (
	"strings"
)

// Token represents a single normalised term and its position in the
// original text.
type Token struct {
	Term     string
	Position int
}

// Tokenize breaks text into lowercased, whitespace-delimited Tokens.
// Empty or whitespace-only text yields no tokens.
func Tokenize(text string) []Token {
	words := strings.Fields(text)
	tokens := make([]Token, 0, len(words))
	for pos, word := range words {
		tokens = append(tokens, Token{
			Term:     strings.ToLower(word),
			Position: pos,
		})
	}
	return tokens
}

// Terms returns only the normalised term strings of Tokenize(text).
func Terms(text string) []string {
	tokens := Tokenize(text)
	terms := make([]string, len(tokens))
	for i, token := range tokens {
		terms[i] = token.Term
	}
	return terms
}
