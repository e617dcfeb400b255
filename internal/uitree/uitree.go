// Package uitree defines the narrow capability interface the bridge
// needs from a foreign GUI's widget tree: read text, walk parents and
// children, set focus, and (on the write side) set text. Backends plug
// in behind this interface; the rest of the code never sees COM or any
// other automation API.
package uitree

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Element is a single widget in a live window's tree.
type Element interface {
	// Text returns the element's visible text, untrimmed.
	Text() (string, error)
	// Parent returns the parent element, or nil for the root.
	Parent() (Element, error)
	// Children returns the direct child elements.
	Children() ([]Element, error)
	// AutomationID returns the backend's persistent widget identifier,
	// or "" when the backend exposes none.
	AutomationID() (string, error)
	// SetFocus gives the element keyboard focus.
	SetFocus() error
	// SetText replaces the element's editable text.
	SetText(s string) error
}

// Walk enumerates every descendant of root depth-first, in the order
// the backend exposes. An element whose children cannot be read is
// kept but its subtree is skipped; an error listing root's own
// children is returned to the caller, since that means the whole tree
// is unreachable.
func Walk(root Element) ([]Element, error) {
	top, err := root.Children()
	if err != nil {
		return nil, eris.Wrap(err, "uitree: enumerate root")
	}

	var out []Element
	var visit func(el Element)
	visit = func(el Element) {
		out = append(out, el)
		kids, err := el.Children()
		if err != nil {
			return
		}
		for _, k := range kids {
			visit(k)
		}
	}
	for _, el := range top {
		visit(el)
	}
	return out, nil
}

// FindByTitle returns the first descendant whose trimmed text equals
// title, or nil.
func FindByTitle(root Element, title string) (Element, error) {
	els, err := Walk(root)
	if err != nil {
		return nil, err
	}
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == title {
			return el, nil
		}
	}
	return nil, nil
}

// FindByAutoID returns the first descendant carrying the given
// automation id, or nil.
func FindByAutoID(root Element, id string) (Element, error) {
	els, err := Walk(root)
	if err != nil {
		return nil, err
	}
	for _, el := range els {
		got, err := el.AutomationID()
		if err != nil {
			continue
		}
		if got == id {
			return el, nil
		}
	}
	return nil, nil
}
