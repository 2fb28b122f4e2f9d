package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single", "Cat", []string{"cat"}},
		{"several", "The Quick FOX", []string{"the", "quick", "fox"}},
		{"repeats kept", "cat cat", []string{"cat", "cat"}},
		{"punctuation kept", "hello, world!", []string{"hello,", "world!"}},
		{"double space yields empty term", "a  b", []string{"a", "", "b"}},
		{"tabs are not separators", "a\tb", []string{"a\tb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Parse(tt.query)
			assert.Equal(t, tt.want, plan.Terms)
			assert.Equal(t, tt.query, plan.RawQuery)
		})
	}
}

func TestQueryPlan_Normalized(t *testing.T) {
	assert.Equal(t, "cat sat", Parse("CAT Sat").Normalized())
}
