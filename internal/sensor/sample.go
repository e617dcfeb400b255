// Package sensor reads temperature/humidity samples from the ESP32
// probe over a serial link. The firmware emits one `RH:<v>,T:<v>` line
// per measurement; everything else on the wire is noise and ignored.
package sensor

import "time"

// Sample is one temperature/humidity measurement from the probe.
type Sample struct {
	Temp     float64 // air temperature in Celsius
	Humidity float64 // relative humidity in percent
	Time     time.Time
}

// Source supplies the most recent sensor sample.
type Source interface {
	// Latest returns the newest sample seen so far, and whether any
	// sample has been seen at all.
	Latest() (Sample, bool)
	Close() error
}
