package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/simbridge/internal/extract"
	"github.com/luki/simbridge/internal/publish"
	"github.com/luki/simbridge/internal/sensor"
	"github.com/luki/simbridge/internal/sim"
	"github.com/luki/simbridge/internal/uitree"
	"github.com/luki/simbridge/internal/uitree/faketree"
)

type stubSource struct {
	sample sensor.Sample
	ok     bool
}

func (s stubSource) Latest() (sensor.Sample, bool) { return s.sample, s.ok }
func (s stubSource) Close() error                  { return nil }

type captureSink struct {
	frames []publish.Frame
}

func (c *captureSink) Publish(_ context.Context, f publish.Frame) error {
	c.frames = append(c.frames, f)
	return nil
}

func (c *captureSink) Close() {}

// simWindow builds a minimal fake simulator window: the inlet panel
// with its temperature field, and an outlet label the engine should
// pick up.
func simWindow() (*faketree.Node, *faketree.Node) {
	field := &faketree.Node{TextValue: "0.00", AutoID: "tbTemp"}
	panel := faketree.New("Air_In (Material Stream)", field)
	outlet := faketree.New("Air_Out Temperature", faketree.New("85.30"))
	return faketree.New("DWSIM - aircool.dwxmz", panel, outlet), field
}

func TestCycleHappyPath(t *testing.T) {
	root, field := simWindow()
	sink := &captureSink{}
	now := time.Date(2026, 2, 21, 14, 30, 0, 0, time.Local)

	var hooked int
	b := &Bridge{
		Sensor:    stubSource{sample: sensor.Sample{Temp: 27.5, Humidity: 55.1, Time: now}, ok: true},
		Reader:    sim.NewReader(extract.DefaultConfig(), root),
		Writer:    sim.NewWriter(root, "Air_In (Material Stream)", "tbTemp"),
		Extract:   extract.DefaultConfig(),
		Sink:      sink,
		Threshold: 27.0,
		OnFrame:   func(publish.Frame) { hooked++ },
		Now:       func() time.Time { return now },
	}

	err := b.Cycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"27.50"}, field.Edited, "inlet field should receive the probe temperature")

	require.Len(t, sink.frames, 1)
	f := sink.frames[0]
	assert.Equal(t, 27.5, f.AirIn)
	assert.Equal(t, 55.1, f.Humidity)
	require.NotNil(t, f.AirOut)
	assert.Equal(t, 85.3, *f.AirOut)
	assert.True(t, f.FanOn)
	assert.True(t, f.CompressorOn)
	require.NotNil(t, f.Reading)
	assert.Equal(t, "Air_Out", f.Reading.Source)
	assert.Equal(t, now, f.Time)

	assert.Equal(t, 1, hooked)
}

type failSink struct{ calls int }

func (f *failSink) Publish(context.Context, publish.Frame) error {
	f.calls++
	return errors.New("backend unreachable")
}

func (f *failSink) Close() {}

func TestCycleSinkFailureDoesNotAbort(t *testing.T) {
	root, _ := simWindow()
	sink := &failSink{}

	var hooked int
	b := &Bridge{
		Sensor:  stubSource{sample: sensor.Sample{Temp: 26.0, Humidity: 50.0}, ok: true},
		Reader:  sim.NewReader(extract.DefaultConfig(), root),
		Writer:  sim.NewWriter(root, "Air_In (Material Stream)", "tbTemp"),
		Extract: extract.DefaultConfig(),
		Sink:    sink,
		OnFrame: func(publish.Frame) { hooked++ },
	}

	err := b.Cycle(context.Background())
	require.NoError(t, err, "a failing sink must not fail the cycle")
	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, 1, hooked, "downstream consumers still get the frame")
}

func TestCycleNoSampleYet(t *testing.T) {
	root, field := simWindow()
	sink := &captureSink{}

	b := &Bridge{
		Sensor:  stubSource{},
		Reader:  sim.NewReader(extract.DefaultConfig(), root),
		Writer:  sim.NewWriter(root, "Air_In (Material Stream)", "tbTemp"),
		Extract: extract.DefaultConfig(),
		Sink:    sink,
	}

	err := b.Cycle(context.Background())
	require.NoError(t, err)

	assert.Empty(t, sink.frames, "a cycle without a sample publishes nothing")
	assert.Empty(t, field.Edited)
}

func TestCycleConnectionLostStillPublishesSensorData(t *testing.T) {
	bad := faketree.New("DWSIM - aircool.dwxmz")
	bad.FailChildren = true
	sink := &captureSink{}

	b := &Bridge{
		Sensor:  stubSource{sample: sensor.Sample{Temp: 25.0, Humidity: 48.0}, ok: true},
		Reader:  sim.NewReader(extract.DefaultConfig(), bad),
		Writer:  sim.NewWriter(bad, "Air_In (Material Stream)", "tbTemp"),
		Extract: extract.DefaultConfig(),
		Sink:    sink,
	}

	err := b.Cycle(context.Background())
	require.ErrorIs(t, err, sim.ErrConnectionLost)

	require.Len(t, sink.frames, 1)
	assert.Nil(t, sink.frames[0].AirOut, "no reading when the window is unreachable")
	assert.Equal(t, 25.0, sink.frames[0].AirIn)
	assert.False(t, b.Reader.Connected())
}

func TestReconnectRestoresReaderAndWriter(t *testing.T) {
	bad := faketree.New("DWSIM - aircool.dwxmz")
	bad.FailChildren = true
	good, field := simWindow()
	sink := &captureSink{}

	b := &Bridge{
		Sensor:  stubSource{sample: sensor.Sample{Temp: 25.0, Humidity: 48.0}, ok: true},
		Reader:  sim.NewReader(extract.DefaultConfig(), bad),
		Writer:  sim.NewWriter(bad, "Air_In (Material Stream)", "tbTemp"),
		Extract: extract.DefaultConfig(),
		Sink:    sink,
		Connect: func() (uitree.Element, error) { return good, nil },
	}

	err := b.Cycle(context.Background())
	require.ErrorIs(t, err, sim.ErrConnectionLost)

	b.reconnect()
	require.True(t, b.Reader.Connected())

	err = b.Cycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"25.00"}, field.Edited, "writer should target the reconnected window")

	require.Len(t, sink.frames, 2)
	require.NotNil(t, sink.frames[1].AirOut)
	assert.Equal(t, 85.3, *sink.frames[1].AirOut)
}

func TestRunStopsOnCancel(t *testing.T) {
	root, _ := simWindow()
	sink := &captureSink{}

	b := &Bridge{
		Sensor:   stubSource{sample: sensor.Sample{Temp: 26.0, Humidity: 50.0}, ok: true},
		Reader:   sim.NewReader(extract.DefaultConfig(), root),
		Writer:   sim.NewWriter(root, "Air_In (Material Stream)", "tbTemp"),
		Extract:  extract.DefaultConfig(),
		Sink:     sink,
		Interval: 5 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(40 * time.Millisecond)
		cancel()
	}()

	err := b.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotEmpty(t, sink.frames, "the first cycle fires immediately")
}
