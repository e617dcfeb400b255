// Package extract recovers the simulator's output temperature from a
// scraped widget tree. The pipeline is: collect numeric-looking widget
// text with label context, drop obvious mole/vapor fractions, score
// what's left, then pick one reading per poll — a fixed structural
// position when the layout holds, best score otherwise.
package extract

import "strconv"

// Candidate is one numeric text value harvested from a widget plus its
// surrounding label context. Candidates live for a single poll cycle.
type Candidate struct {
	Text    string  // raw trimmed widget text
	Context string  // "parent | self" label context
	Value   float64 // parsed value, meaningful only when Valid
	Valid   bool
	AutoID  string // backend widget identifier, "" when absent
}

// NewCandidate builds a candidate, parsing the numeric value once.
func NewCandidate(text, context, autoID string) Candidate {
	c := Candidate{Text: text, Context: context, AutoID: autoID}
	v, err := strconv.ParseFloat(text, 64)
	if err == nil {
		c.Value = v
		c.Valid = true
	}
	return c
}

// Scored pairs a candidate with its confidence score.
type Scored struct {
	Candidate
	Score int
}
