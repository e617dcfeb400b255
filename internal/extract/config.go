package extract

// Score bonuses for the numeric plausibility ranges, and the fixed
// score that disqualifies a candidate outright.
const (
	preferredBonus = 20
	plausibleBonus = 10

	// ScoreInvalid disqualifies a candidate: unparsable text or a value
	// outside the plausible range.
	ScoreInvalid = -100
)

// Config drives the whole extraction engine. The two historical
// deployments of this pipeline diverged on keyword tables and filter
// strictness; all of those differences live here as data.
type Config struct {
	// Source labels the readings this engine produces, e.g. "Air_Out".
	Source string `mapstructure:"source"`

	// TargetAutoID selects the output field by persistent widget id
	// when the host GUI exposes one. Preferred over LockedIndex.
	TargetAutoID string `mapstructure:"target_auto_id"`

	// LockedIndex is the 1-based position of the target field in the
	// enumerated candidate sequence. 0 disables positional lock.
	LockedIndex int `mapstructure:"locked_index"`

	// LockedConfidence is the confidence assigned to keyed or
	// locked-index selections, which bypass scoring.
	LockedConfidence int `mapstructure:"locked_confidence"`

	// PreferredMin/Max is the expected operating range (+20).
	PreferredMin float64 `mapstructure:"preferred_min"`
	PreferredMax float64 `mapstructure:"preferred_max"`

	// PlausibleMin/Max is the widest believable range (+10); values
	// outside it score ScoreInvalid.
	PlausibleMin float64 `mapstructure:"plausible_min"`
	PlausibleMax float64 `mapstructure:"plausible_max"`

	// KeywordBonuses maps lowercase context substrings to additive
	// score bonuses.
	KeywordBonuses map[string]int `mapstructure:"keyword_bonuses"`

	// FractionKeywords mark fraction-like context (−FractionPenalty,
	// and the filter drops unit-interval values carrying them).
	FractionKeywords []string `mapstructure:"fraction_keywords"`

	// StrongFractionKeywords incur an extra −StrongFractionPenalty on
	// top of the plain fraction penalty.
	StrongFractionKeywords []string `mapstructure:"strong_fraction_keywords"`

	FractionPenalty       int `mapstructure:"fraction_penalty"`
	StrongFractionPenalty int `mapstructure:"strong_fraction_penalty"`

	// UnitIntervalPenalty applies to any value in [0,1] regardless of
	// context; ZeroPenalty stacks on an exact 0.0.
	UnitIntervalPenalty int `mapstructure:"unit_interval_penalty"`
	ZeroPenalty         int `mapstructure:"zero_penalty"`

	// MaxContextLen caps how long a parent label may be before it is
	// considered decoration rather than context.
	MaxContextLen int `mapstructure:"max_context_len"`
}

// DefaultConfig returns the engine configuration for the air-cooling
// flowsheet deployment.
func DefaultConfig() Config {
	return Config{
		Source:           "Air_Out",
		LockedIndex:      8,
		LockedConfidence: 100,
		PreferredMin:     15,
		PreferredMax:     200,
		PlausibleMin:     -50,
		PlausibleMax:     500,
		KeywordBonuses: map[string]int{
			"air_out":           40,
			"temperature":       30,
			"stream conditions": 50,
			"material stream":   20,
			"input data":        15,
			"°c":                15,
			"celsius":           15,
			"temp":              15,
		},
		FractionKeywords:       []string{"fraction", "mole", "mole fraction", "vapor phase mole"},
		StrongFractionKeywords: []string{"vapor phase mole fraction", "liquid phase mole fraction"},
		FractionPenalty:        40,
		StrongFractionPenalty:  60,
		UnitIntervalPenalty:    50,
		ZeroPenalty:            30,
		MaxContextLen:          100,
	}
}
