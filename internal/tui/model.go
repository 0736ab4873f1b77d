package tui

import (
	"github.com/charmbracelet/bubbles/viewport"

	"blockpatch/internal/diff"
)

type decision int

const (
	pending decision = iota
	accepted
	declined
)

// model is the Bubbletea model for the confirm screen.
type model struct {
	path     string
	hunks    []diff.Hunk
	added    int
	removed  int
	viewport viewport.Model
	ready    bool // set once the first window size is known
	width    int
	height   int
	decision decision
}

// initialModel creates the confirm screen for the change to path.
func initialModel(path string, hunks []diff.Hunk) model {
	added, removed := diff.Stat(hunks)
	return model{
		path:    path,
		hunks:   hunks,
		added:   added,
		removed: removed,
		width:   80,
		height:  24,
	}
}
