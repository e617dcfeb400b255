package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFraction(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		text string
		ctx  string
		want bool
	}{
		{"unit interval with fraction context", "0.42", "Vapor Phase Mole Fraction", true},
		{"unit interval with mole context", "0.97", "Mole Frac (Vapor)", true},
		{"unit interval without context", "0.42", "Stream Conditions", false},
		{"temperature value with fraction context", "85.30", "Fraction Panel", false},
		{"negative value", "-0.5", "fraction", false},
		{"unparsable", "abc", "fraction", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsFraction(cand(tt.text, tt.ctx)))
		})
	}
}

func TestFilterDropsFractionsOnly(t *testing.T) {
	cfg := DefaultConfig()
	cands := []Candidate{
		cand("0.42", "Vapor Phase Mole Fraction"),
		cand("85.30", "Air_Out Temperature"),
		cand("abc", "Temperature"),
		cand("0.58", "Liquid Phase Mole Fraction"),
		cand("23.10", "Input Data"),
	}

	got := cfg.Filter(cands)

	texts := make([]string, len(got))
	for i, c := range got {
		texts[i] = c.Text
	}
	// Unparsable text stays in the pool; scoring disqualifies it instead.
	assert.Equal(t, []string{"85.30", "abc", "23.10"}, texts)
}

func TestFilterEmpty(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Filter(nil))
}
