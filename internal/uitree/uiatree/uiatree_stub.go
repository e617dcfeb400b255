//go:build !windows

package uiatree

import (
	"github.com/rotisserie/eris"

	"github.com/luki/simbridge/internal/uitree"
)

// Connect is only implemented on Windows, where UI Automation lives.
func Connect(pattern string) (uitree.Element, error) {
	return nil, eris.New("uiatree: UI Automation backend is only available on windows")
}
