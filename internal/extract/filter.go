package extract

import "strings"

// IsFraction reports whether a candidate is almost certainly a
// mole/vapor fraction rather than a temperature: a value inside [0,1]
// with fraction-indicating label context.
func (c Config) IsFraction(cand Candidate) bool {
	if !cand.Valid {
		return false
	}
	if cand.Value < 0.0 || cand.Value > 1.0 {
		return false
	}
	return containsAny(strings.ToLower(cand.Context), c.FractionKeywords)
}

// Filter drops fraction candidates, preserving order. Unparsable
// candidates pass through; scoring disqualifies them with ScoreInvalid
// instead of silently dropping them, so they stay visible to
// inspection tooling.
func (c Config) Filter(cands []Candidate) []Candidate {
	out := cands[:0:0]
	for _, cand := range cands {
		if c.IsFraction(cand) {
			continue
		}
		out = append(out, cand)
	}
	return out
}
