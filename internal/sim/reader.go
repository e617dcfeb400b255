// Package sim owns the two touchpoints with the running simulator GUI:
// the reader scrapes the widget tree for candidate output values, the
// writer types the sensor temperature into the inlet stream's input
// field. Neither holds any selection logic; that lives in extract.
package sim

import (
	"errors"

	"go.uber.org/zap"

	"github.com/luki/simbridge/internal/extract"
	"github.com/luki/simbridge/internal/uitree"
)

// ErrConnectionLost reports that the simulator window became
// unreachable as a whole. The caller reconnects before the next cycle;
// the cycle that hit it simply has no data.
var ErrConnectionLost = errors.New("sim: connection lost")

// Connector reattaches to the simulator window, e.g. uiatree.Connect
// bound to a title pattern.
type Connector func() (uitree.Element, error)

// Reader collects extraction candidates from the simulator window and
// tracks whether the connection is still believed live.
type Reader struct {
	cfg       extract.Config
	root      uitree.Element
	connected bool
}

// NewReader wraps an attached window root.
func NewReader(cfg extract.Config, root uitree.Element) *Reader {
	return &Reader{cfg: cfg, root: root, connected: root != nil}
}

// Connected reports whether the last collection succeeded.
func (r *Reader) Connected() bool {
	return r.connected
}

// Root returns the currently attached window root, nil when detached.
func (r *Reader) Root() uitree.Element {
	return r.root
}

// Collect scrapes one poll's worth of candidates. On whole-tree
// failure it marks the connection lost and returns ErrConnectionLost;
// the caller decides when to reconnect.
func (r *Reader) Collect() ([]extract.Candidate, error) {
	if !r.connected || r.root == nil {
		return nil, ErrConnectionLost
	}
	cands, err := r.cfg.Collect(r.root)
	if err != nil {
		zap.L().Error("sim: candidate collection failed", zap.Error(err))
		r.connected = false
		return nil, ErrConnectionLost
	}
	return cands, nil
}

// Reconnect reattaches using the connector. On failure the reader
// stays disconnected and the error is returned.
func (r *Reader) Reconnect(connect Connector) error {
	root, err := connect()
	if err != nil {
		return err
	}
	r.root = root
	r.connected = true
	zap.L().Info("sim: reader reconnected")
	return nil
}
