package parser

import (
	"strings"
)

type QueryPlan struct {
	Terms    []string
	RawQuery string
}

// Parse splits query on single spaces and lowercases every piece. Runs of
// spaces produce empty terms; they match no document and score nothing.
func Parse(query string) *QueryPlan {
	plan := &QueryPlan{
		Terms:    make([]string, 0),
		RawQuery: query,
	}
	if query == "" {
		return plan
	}
	for _, word := range strings.Split(query, " ") {
		plan.Terms = append(plan.Terms, strings.ToLower(word))
	}
	return plan
}

// Normalized is the canonical form of the plan used as a cache key.
func (p *QueryPlan) Normalized() string {
	return strings.Join(p.Terms, " ")
}
