// Package publish uploads each poll cycle's telemetry to the
// configured backends: InfluxDB for raw process metrics and a
// ThingsBoard-style MQTT broker for the dashboard payload. The two
// payloads deliberately differ: equipment status flags go to MQTT
// only.
package publish

import (
	"time"

	"github.com/luki/simbridge/internal/extract"
	"github.com/luki/simbridge/internal/sensor"
)

// Telemetry stream names, shared by the sinks, the CSV store and the
// live monitor.
const (
	StreamAirIn       = "Air_In"
	StreamTemperature = "Temperature"
	StreamHumidity    = "Humidity"
	StreamAirOut      = "Air_Out"
)

var displayNames = map[string]string{
	StreamAirIn:       "Inlet Air (probe)",
	StreamTemperature: "Probe Temperature",
	StreamHumidity:    "Relative Humidity",
	StreamAirOut:      "Outlet Air (simulated)",
}

// DisplayName returns a human-readable label for a stream.
func DisplayName(stream string) string {
	if n, ok := displayNames[stream]; ok {
		return n
	}
	return stream
}

// Frame is one poll cycle's worth of telemetry. AirOut is nil when the
// extraction engine produced no reading this cycle; sinks then skip
// the outlet stream rather than fabricating a value.
type Frame struct {
	Time         time.Time
	AirIn        float64
	Humidity     float64
	AirOut       *float64
	FanOn        bool
	CompressorOn bool

	// Reading carries the selection metadata (source, confidence,
	// context) behind AirOut, nil when absent.
	Reading *extract.Reading
}

// NewFrame assembles a frame from the sensor sample and the optional
// extracted reading. Fan and compressor switch on when the inlet
// temperature exceeds the threshold.
func NewFrame(sample sensor.Sample, reading *extract.Reading, threshold float64, now time.Time) Frame {
	f := Frame{
		Time:     now,
		AirIn:    sample.Temp,
		Humidity: sample.Humidity,
		Reading:  reading,
	}
	if reading != nil {
		v := reading.Value
		f.AirOut = &v
	}
	if sample.Temp > threshold {
		f.FanOn = true
		f.CompressorOn = true
	}
	return f
}
