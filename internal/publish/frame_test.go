package publish

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/simbridge/internal/extract"
	"github.com/luki/simbridge/internal/sensor"
)

var frameTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewFrameStatusThreshold(t *testing.T) {
	tests := []struct {
		name   string
		temp   float64
		wantOn bool
	}{
		{"below threshold", 25.0, false},
		{"at threshold", 27.0, false},
		{"above threshold", 27.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(sensor.Sample{Temp: tt.temp, Humidity: 50}, nil, 27.0, frameTime)
			assert.Equal(t, tt.wantOn, f.FanOn)
			assert.Equal(t, tt.wantOn, f.CompressorOn)
		})
	}
}

func TestNewFrameAirOut(t *testing.T) {
	sample := sensor.Sample{Temp: 27.5, Humidity: 55.1}

	f := NewFrame(sample, nil, 27.0, frameTime)
	assert.Nil(t, f.AirOut, "no reading means no outlet value")

	r := &extract.Reading{Value: 85.3, Source: "Air_Out", Confidence: 100}
	f = NewFrame(sample, r, 27.0, frameTime)
	require.NotNil(t, f.AirOut)
	assert.Equal(t, 85.3, *f.AirOut)
	assert.Same(t, r, f.Reading)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Inlet Air (probe)", DisplayName(StreamAirIn))
	assert.Equal(t, "Outlet Air (simulated)", DisplayName(StreamAirOut))
	assert.Equal(t, "Custom", DisplayName("Custom"))
}
