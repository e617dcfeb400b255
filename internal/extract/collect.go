package extract

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/luki/simbridge/internal/uitree"
)

var numericRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Collect enumerates the window's descendants and harvests every
// element whose trimmed text looks like a decimal number, pairing it
// with "parent | self" label context. Enumeration order is whatever
// the widget tree exposes; the locked-index selection rule depends on
// it staying stable between polls.
//
// Individual unreadable elements are skipped. Failure to enumerate the
// tree at all is returned to the caller, who treats it as connection
// loss.
func (c Config) Collect(root uitree.Element) ([]Candidate, error) {
	// The automation layer enumerates reliably only on a focused
	// window. Focus loss is not fatal; the walk may still succeed.
	_ = root.SetFocus()

	els, err := uitree.Walk(root)
	if err != nil {
		return nil, eris.Wrap(err, "extract: enumerate widget tree")
	}

	maxCtx := c.MaxContextLen
	if maxCtx <= 0 {
		maxCtx = 100
	}

	var cands []Candidate
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if !numericRe.MatchString(text) {
			continue
		}

		context := text
		if parent, err := el.Parent(); err == nil && parent != nil {
			if ptext, perr := parent.Text(); perr == nil {
				ptext = strings.TrimSpace(ptext)
				if ptext != "" && len(ptext) < maxCtx {
					context = ptext + " | " + context
				}
			}
		}

		id, _ := el.AutomationID()
		cands = append(cands, NewCandidate(text, context, id))
	}
	return cands, nil
}
