package extract

import "time"

// Reading is a validated temperature selection, at most one per poll.
// Its value always equals some collected candidate's parsed value; the
// engine never synthesizes or carries readings over between polls.
type Reading struct {
	Value      float64
	Time       time.Time
	Source     string
	Confidence int
	Context    string
}
