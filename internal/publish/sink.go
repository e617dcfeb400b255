package publish

import (
	"context"

	"go.uber.org/zap"
)

// Sink receives one telemetry frame per poll cycle.
type Sink interface {
	Publish(ctx context.Context, f Frame) error
	Close()
}

// Multi fans a frame out to several sinks. A failing sink is logged
// and skipped; one unreachable backend must not cost the others their
// data, and never aborts the poll cycle.
type Multi []Sink

var _ Sink = Multi(nil)

func (m Multi) Publish(ctx context.Context, f Frame) error {
	for _, s := range m {
		if err := s.Publish(ctx, f); err != nil {
			zap.L().Error("publish: sink failed", zap.Error(err))
		}
	}
	return nil
}

func (m Multi) Close() {
	for _, s := range m {
		s.Close()
	}
}
