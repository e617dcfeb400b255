package extract

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Select chooses at most one reading from a poll's filtered candidate
// sequence. Precedence:
//
//  1. keyed lookup by TargetAutoID, when configured and present
//  2. locked index, when the sequence is long enough and the candidate
//     both parses and sits inside the plausible range
//  3. highest positive score (stable sort, ties keep collection order)
//
// A nil reading is the valid "no data this cycle" outcome, not an
// error. Nothing is ever synthesized or carried over from an earlier
// poll.
func (c Config) Select(cands []Candidate, now time.Time) *Reading {
	if len(cands) == 0 {
		return nil
	}

	if c.TargetAutoID != "" {
		for _, cand := range cands {
			if cand.AutoID == c.TargetAutoID && cand.Valid {
				zap.L().Debug("extract: selected by widget id",
					zap.String("auto_id", cand.AutoID),
					zap.Float64("value", cand.Value),
				)
				return c.reading(cand, now, c.LockedConfidence)
			}
		}
	}

	if c.LockedIndex > 0 && len(cands) >= c.LockedIndex {
		locked := cands[c.LockedIndex-1]
		if locked.Valid && locked.Value >= c.PlausibleMin && locked.Value <= c.PlausibleMax {
			zap.L().Debug("extract: selected by locked index",
				zap.Int("index", c.LockedIndex),
				zap.Float64("value", locked.Value),
			)
			return c.reading(locked, now, c.LockedConfidence)
		}
		zap.L().Warn("extract: locked-index candidate failed sanity check, falling back to scoring",
			zap.Int("index", c.LockedIndex),
			zap.String("text", locked.Text),
		)
	}

	scored := c.ScoreAll(cands)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if best := scored[0]; best.Score > 0 {
		zap.L().Debug("extract: selected by score",
			zap.Int("score", best.Score),
			zap.Float64("value", best.Value),
			zap.String("context", best.Context),
		)
		return c.reading(best.Candidate, now, best.Score)
	}

	return nil
}

func (c Config) reading(cand Candidate, now time.Time, confidence int) *Reading {
	return &Reading{
		Value:      cand.Value,
		Time:       now,
		Source:     c.Source,
		Confidence: confidence,
		Context:    cand.Context,
	}
}
