package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type palette struct {
	header, hunk, insert, remove *color.Color
}

func newPalette(colored bool) palette {
	p := palette{
		header: color.New(color.Bold),
		hunk:   color.New(color.FgCyan),
		insert: color.New(color.FgGreen),
		remove: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.header, p.hunk, p.insert, p.remove} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Render writes hunks for path in unified diff layout.
func Render(w io.Writer, path string, hunks []Hunk, colored bool) error {
	if len(hunks) == 0 {
		return nil
	}
	p := newPalette(colored)
	if _, err := p.header.Fprintf(w, "--- a/%s\n+++ b/%s\n", path, path); err != nil {
		return err
	}
	for _, h := range hunks {
		if _, err := p.hunk.Fprintf(w, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines); err != nil {
			return err
		}
		for _, l := range h.Lines {
			if err := renderLine(w, p, l); err != nil {
				return err
			}
		}
	}
	return nil
}

// String renders hunks without color.
func String(path string, hunks []Hunk) string {
	var sb strings.Builder
	_ = Render(&sb, path, hunks, false)
	return sb.String()
}

func renderLine(w io.Writer, p palette, l Line) error {
	text := strings.TrimSuffix(l.Text, "\n")
	var err error
	switch l.Op {
	case Insert:
		_, err = p.insert.Fprintf(w, "+%s\n", text)
	case Delete:
		_, err = p.remove.Fprintf(w, "-%s\n", text)
	default:
		_, err = fmt.Fprintf(w, " %s\n", text)
	}
	if err != nil {
		return err
	}
	if !strings.HasSuffix(l.Text, "\n") {
		_, err = fmt.Fprintln(w, `\ No newline at end of file`)
	}
	return err
}
