package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"blockpatch/internal/diff"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	hunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF"))
	insertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	removeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

// ModelView renders the confirm screen.
func ModelView(m model) string {
	switch m.decision {
	case accepted, declined:
		return ""
	}

	header := headerStyle.Render(truncate("Patch "+m.path, m.width-12)) +
		fmt.Sprintf("  %s %s",
			insertStyle.Render(fmt.Sprintf("+%d", m.added)),
			removeStyle.Render(fmt.Sprintf("-%d", m.removed)))
	rule := ruleStyle.Render(strings.Repeat("─", max(m.width, 1)))
	help := helpStyle.Render("y/enter apply • n/q/esc skip • ↑/↓ scroll")

	body := renderHunks(m.hunks, m.width)
	if m.ready {
		body = m.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, rule, body, rule, help)
}

// renderHunks lays out hunks as styled lines no wider than width cells.
func renderHunks(hunks []diff.Hunk, width int) string {
	var lines []string
	for _, h := range hunks {
		lines = append(lines, hunkStyle.Render(
			fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)))
		for _, l := range h.Lines {
			text := strings.TrimSuffix(l.Text, "\n")
			switch l.Op {
			case diff.Insert:
				lines = append(lines, insertStyle.Render(truncate("+"+text, width)))
			case diff.Delete:
				lines = append(lines, removeStyle.Render(truncate("-"+text, width)))
			default:
				lines = append(lines, truncate(" "+text, width))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// truncate cuts s to at most width display cells. Tabs count as one cell
// for runewidth, so they are expanded first.
func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
