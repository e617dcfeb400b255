// Package bridge runs the poll loop that ties the pieces together:
// take the latest sensor sample, type it into the simulator's inlet
// field, wait for the flowsheet to settle, scrape and select the
// outlet reading, then fan the resulting frame out to history, disk
// and the publish sinks.
package bridge

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/luki/simbridge/internal/extract"
	"github.com/luki/simbridge/internal/publish"
	"github.com/luki/simbridge/internal/sensor"
	"github.com/luki/simbridge/internal/sim"
	"github.com/luki/simbridge/internal/store"
)

// Bridge polls the sensor and the simulator on a fixed interval. All
// fields are set once before Run; the loop itself is single-threaded.
type Bridge struct {
	Sensor  sensor.Source
	Reader  *sim.Reader
	Writer  *sim.Writer
	Connect sim.Connector
	Extract extract.Config
	Sink    publish.Sink
	Disk    *store.DiskStore // nil disables CSV logging

	Interval  time.Duration
	Settle    time.Duration
	Threshold float64

	// OnFrame, when set, receives every completed frame. The live
	// monitor uses it to feed its charts.
	OnFrame func(publish.Frame)

	// Now is the cycle clock, time.Now when nil.
	Now func() time.Time
}

func (b *Bridge) clock() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Cycle executes one poll: write the inlet temperature, let the
// flowsheet settle, collect and select the outlet reading, publish the
// frame. A lost simulator connection is reported as
// sim.ErrConnectionLost after the frame (without a reading) has still
// been published; a missing reading alone is not an error.
func (b *Bridge) Cycle(ctx context.Context) error {
	now := b.clock()

	sample, ok := b.Sensor.Latest()
	if !ok {
		zap.L().Warn("bridge: no sensor sample yet, skipping cycle")
		return nil
	}

	if err := b.Writer.WriteTemperature(sample.Temp); err != nil {
		zap.L().Error("bridge: inlet write failed", zap.Error(err))
	}

	if !sleep(ctx, b.Settle) {
		return ctx.Err()
	}

	var reading *extract.Reading
	cands, collectErr := b.Reader.Collect()
	if collectErr == nil {
		reading = b.Extract.Select(b.Extract.Filter(cands), now)
	}

	frame := publish.NewFrame(sample, reading, b.Threshold, now)

	if b.Disk != nil {
		if err := b.Disk.Write(frame); err != nil {
			zap.L().Error("bridge: csv write failed", zap.Error(err))
		}
	}
	if b.Sink != nil {
		if err := b.Sink.Publish(ctx, frame); err != nil {
			zap.L().Error("bridge: publish failed", zap.Error(err))
		}
	}
	if b.OnFrame != nil {
		b.OnFrame(frame)
	}

	return collectErr
}

// Run cycles until the context is canceled. The first cycle fires
// immediately; after a lost connection it tries to reattach to the
// simulator window before the next tick.
func (b *Bridge) Run(ctx context.Context) error {
	interval := b.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := b.Cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, sim.ErrConnectionLost) {
				b.reconnect()
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (b *Bridge) reconnect() {
	if b.Connect == nil {
		return
	}
	if err := b.Reader.Reconnect(b.Connect); err != nil {
		zap.L().Warn("bridge: reconnect failed", zap.Error(err))
		return
	}
	b.Writer.Attach(b.Reader.Root())
}

// sleep waits d unless the context ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
