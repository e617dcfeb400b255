package sim

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/luki/simbridge/internal/uitree"
)

// Writer types a temperature into the simulator's inlet input field.
// It is a one-shot side effect with no decision logic: find the panel
// by title, find the edit control by widget id, set the text.
type Writer struct {
	root      uitree.Element
	panel     string // e.g. "Air_In (Material Stream)"
	controlID string // e.g. "tbTemp"
}

// NewWriter binds the writer to a window root and field coordinates.
func NewWriter(root uitree.Element, panelTitle, controlID string) *Writer {
	return &Writer{root: root, panel: panelTitle, controlID: controlID}
}

// Attach points the writer at a (re)connected window root.
func (w *Writer) Attach(root uitree.Element) {
	w.root = root
}

// WriteTemperature sets the inlet field to the given value, formatted
// to two decimals the way the simulator expects.
func (w *Writer) WriteTemperature(v float64) error {
	if w.root == nil {
		return eris.New("sim: writer not attached")
	}

	panel, err := uitree.FindByTitle(w.root, w.panel)
	if err != nil {
		return eris.Wrapf(err, "sim: locate panel %q", w.panel)
	}
	if panel == nil {
		return eris.Errorf("sim: panel %q not found", w.panel)
	}
	if err := panel.SetFocus(); err != nil {
		return eris.Wrapf(err, "sim: focus panel %q", w.panel)
	}

	field, err := uitree.FindByAutoID(panel, w.controlID)
	if err != nil {
		return eris.Wrapf(err, "sim: locate control %q", w.controlID)
	}
	if field == nil {
		return eris.Errorf("sim: control %q not found in panel %q", w.controlID, w.panel)
	}

	text := fmt.Sprintf("%.2f", v)
	if err := field.SetText(text); err != nil {
		return eris.Wrapf(err, "sim: set %q", text)
	}

	zap.L().Info("sim: inlet temperature written", zap.String("value", text))
	return nil
}
