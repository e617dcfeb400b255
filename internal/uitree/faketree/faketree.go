// Package faketree is an in-memory uitree backend for tests and
// offline inspection. Nodes can be told to fail individual operations
// to exercise the collector's skip-and-continue behavior.
package faketree

import (
	"errors"

	"github.com/luki/simbridge/internal/uitree"
)

// ErrInaccessible is returned by operations on nodes marked as failing.
var ErrInaccessible = errors.New("faketree: element inaccessible")

// Node is a fake widget. The zero value is an empty, accessible node.
type Node struct {
	TextValue string
	AutoID    string

	FailText     bool // Text() fails
	FailChildren bool // Children() fails

	Focused  bool
	Edited   []string // every value passed to SetText, in order
	parent   *Node
	children []*Node
}

var _ uitree.Element = (*Node)(nil)

// New builds a node with the given text and children, wiring parents.
func New(text string, children ...*Node) *Node {
	n := &Node{TextValue: text}
	for _, c := range children {
		n.Add(c)
	}
	return n
}

// Add appends a child node.
func (n *Node) Add(c *Node) *Node {
	c.parent = n
	n.children = append(n.children, c)
	return n
}

func (n *Node) Text() (string, error) {
	if n.FailText {
		return "", ErrInaccessible
	}
	return n.TextValue, nil
}

func (n *Node) Parent() (uitree.Element, error) {
	if n.parent == nil {
		return nil, nil
	}
	return n.parent, nil
}

func (n *Node) Children() ([]uitree.Element, error) {
	if n.FailChildren {
		return nil, ErrInaccessible
	}
	out := make([]uitree.Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out, nil
}

func (n *Node) AutomationID() (string, error) {
	return n.AutoID, nil
}

func (n *Node) SetFocus() error {
	n.Focused = true
	return nil
}

func (n *Node) SetText(s string) error {
	if n.FailText {
		return ErrInaccessible
	}
	n.Edited = append(n.Edited, s)
	n.TextValue = s
	return nil
}
