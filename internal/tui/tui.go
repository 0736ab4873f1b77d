// Package tui implements the interactive confirm screen shown before a
// file is patched.
package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"blockpatch/internal/diff"
)

// Init initializes the model and returns any initial commands to run.
func (m model) Init() tea.Cmd {
	return nil
}

// Confirmer shows each change in a full-screen diff view and waits for
// the user to accept or decline it.
type Confirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm runs the confirm screen for one file. It reports true only when
// the user accepted the change.
func (c Confirmer) Confirm(path string, hunks []diff.Hunk) (bool, error) {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if c.In != nil {
		opts = append(opts, tea.WithInput(c.In))
	}
	if c.Out != nil {
		opts = append(opts, tea.WithOutput(c.Out))
	}

	p := tea.NewProgram(&teaModelAdapter{initialModel(path, hunks)}, opts...)
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running confirm screen: %w", err)
	}
	a, ok := final.(*teaModelAdapter)
	if !ok {
		return false, nil
	}
	return a.m.decision == accepted, nil
}

// teaModelAdapter adapts our model to the tea.Model interface using Update and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}
