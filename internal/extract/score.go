package extract

import "strings"

// Score computes the confidence score for a candidate. It is a pure
// function of (value, context): the same pair always yields the same
// score.
func (c Config) Score(cand Candidate) int {
	if !cand.Valid {
		return ScoreInvalid
	}

	v := cand.Value
	score := 0
	switch {
	case v >= c.PreferredMin && v <= c.PreferredMax:
		score += preferredBonus
	case v >= c.PlausibleMin && v <= c.PlausibleMax:
		score += plausibleBonus
	default:
		return ScoreInvalid
	}

	// Unit-interval values are almost always fractions or empty fields,
	// keyword context or not.
	if v >= 0.0 && v <= 1.0 {
		score -= c.UnitIntervalPenalty
	}
	if v == 0.0 {
		score -= c.ZeroPenalty
	}

	ctx := strings.ToLower(cand.Context)
	for kw, bonus := range c.KeywordBonuses {
		if strings.Contains(ctx, kw) {
			score += bonus
		}
	}
	if containsAny(ctx, c.FractionKeywords) {
		score -= c.FractionPenalty
	}
	if containsAny(ctx, c.StrongFractionKeywords) {
		score -= c.StrongFractionPenalty
	}

	return score
}

// ScoreAll scores every candidate, preserving order.
func (c Config) ScoreAll(cands []Candidate) []Scored {
	out := make([]Scored, len(cands))
	for i, cand := range cands {
		out[i] = Scored{Candidate: cand, Score: c.Score(cand)}
	}
	return out
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
