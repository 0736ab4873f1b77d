// Package diff renders line-oriented previews of a patch.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of a diff, including its trailing newline if any.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a run of changed lines with surrounding context. Start fields
// are 1-based line numbers.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line
}

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// Lines computes a line diff between old and new.
func Lines(old, new string) []Line {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out []Line
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = Insert
		case diffmatchpatch.DiffDelete:
			op = Delete
		case diffmatchpatch.DiffEqual:
			op = Equal
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, Line{Op: op, Text: text})
		}
	}
	return out
}

// Hunks groups lines into hunks with context unchanged lines on each side.
// Changes separated by at most 2*context unchanged lines share a hunk.
func Hunks(lines []Line, context int) []Hunk {
	n := len(lines)
	oldNo := make([]int, n+1)
	newNo := make([]int, n+1)
	o, w := 1, 1
	for k, l := range lines {
		oldNo[k], newNo[k] = o, w
		switch l.Op {
		case Equal:
			o++
			w++
		case Delete:
			o++
		case Insert:
			w++
		}
	}
	oldNo[n], newNo[n] = o, w

	var hunks []Hunk
	for i := 0; i < n; {
		if lines[i].Op == Equal {
			i++
			continue
		}
		start := max(i-context, 0)
		end := i
		for end < n {
			if lines[end].Op != Equal {
				end++
				continue
			}
			run := end
			for run < n && lines[run].Op == Equal {
				run++
			}
			if run < n && run-end <= 2*context {
				end = run
				continue
			}
			break
		}
		stop := min(end+context, n)

		h := Hunk{OldStart: oldNo[start], NewStart: newNo[start], Lines: lines[start:stop]}
		for _, l := range h.Lines {
			if l.Op != Insert {
				h.OldLines++
			}
			if l.Op != Delete {
				h.NewLines++
			}
		}
		hunks = append(hunks, h)
		i = stop
	}
	return hunks
}

// Compute is Lines followed by Hunks with DefaultContext.
func Compute(old, new string) []Hunk {
	return Hunks(Lines(old, new), DefaultContext)
}

// Stat counts inserted and deleted lines across hunks.
func Stat(hunks []Hunk) (added, removed int) {
	for _, h := range hunks {
		for _, l := range h.Lines {
			switch l.Op {
			case Insert:
				added++
			case Delete:
				removed++
			}
		}
	}
	return added, removed
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
