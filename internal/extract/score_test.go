package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cand(text, context string) Candidate {
	return NewCandidate(text, context, "")
}

func TestScoreRanges(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		text string
		ctx  string
		want int
	}{
		{"preferred range", "85.30", "", 20},
		{"plausible range", "-20.5", "", 10},
		{"above plausible", "750.0", "", ScoreInvalid},
		{"below plausible", "-200", "", ScoreInvalid},
		{"unparsable", "abc", "Temperature", ScoreInvalid},
		{"unit interval", "0.42", "", 10 - 50},
		{"exact zero", "0", "", 10 - 50 - 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Score(cand(tt.text, tt.ctx)))
		})
	}
}

func TestScoreKeywords(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		text string
		ctx  string
		want int
	}{
		// air_out + temperature + temp bonuses on top of the range bonus.
		{"output stream label", "85.30", "Air_Out Temperature", 20 + 40 + 30 + 15},
		{"stream conditions", "91.15", "Stream Conditions", 20 + 50},
		{"material stream", "30.0", "Air_In (Material Stream)", 20 + 20},
		{"input data", "23.10", "Input Data", 20 + 15},
		{"celsius unit", "25.0", "Value (°C)", 20 + 15},
		// All fraction keywords plus the strong keyword, on a unit-interval value.
		{"vapor fraction", "0.42", "Vapor Phase Mole Fraction", 10 - 50 - 40 - 60},
		// Fraction context on a temperature-range value: penalty only.
		{"fraction context, plausible value", "85.30", "Fraction Panel", 20 - 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Score(cand(tt.text, tt.ctx)))
		})
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t,
		cfg.Score(cand("85.30", "AIR_OUT TEMPERATURE")),
		cfg.Score(cand("85.30", "air_out temperature")),
	)
}

func TestScoreIsPure(t *testing.T) {
	cfg := DefaultConfig()
	c := cand("85.30", "Air_Out Temperature")
	first := cfg.Score(c)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, cfg.Score(c))
	}
}

func TestScoreAllPreservesOrder(t *testing.T) {
	cfg := DefaultConfig()
	cands := []Candidate{
		cand("0.42", "Vapor Phase Mole Fraction"),
		cand("85.30", "Air_Out Temperature"),
		cand("23.10", "Input Data"),
	}
	scored := cfg.ScoreAll(cands)
	assert.Len(t, scored, 3)
	for i := range cands {
		assert.Equal(t, cands[i].Text, scored[i].Text)
	}
}
