package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Rows taken by the header and footer around the viewport.
const chromeHeight = 4

// Update handles all Bubbletea update logic for the confirm screen.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyMsg(m, msg)
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg)
	}
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func handleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	if m.decision != pending {
		return m, nil
	}
	switch msg.String() {
	case "y", "Y", "enter":
		m.decision = accepted
		return m, tea.Quit
	case "n", "N", "q", "esc", "ctrl+c":
		m.decision = declined
		return m, tea.Quit
	}
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func handleWindowResize(m model, msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	h := max(msg.Height-chromeHeight, 3)
	if !m.ready {
		m.viewport = viewport.New(msg.Width, h)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = h
	}
	m.viewport.SetContent(renderHunks(m.hunks, msg.Width))
	return m, nil
}
