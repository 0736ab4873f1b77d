package core

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"blockpatch/pkg/block"
)

// Status is the terminal state of one target.
type Status string

const (
	StatusPatched     Status = "patched"
	StatusUnchanged   Status = "unchanged"
	StatusWouldChange Status = "would change"
	StatusDeclined    Status = "declined"
	StatusSkipped     Status = "skipped"
	StatusFailed      Status = "failed"
)

// Outcome describes what happened to one target.
type Outcome struct {
	Name   string
	Path   string
	Status Status
	Err    error

	Region         block.Region
	StartLine      int
	EndLine        int
	Added, Removed int
}

func (o Outcome) fail(err error) Outcome {
	o.Status = StatusFailed
	o.Err = err
	return o
}

// Report collects the outcomes of a run in order.
type Report struct {
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Count returns how many outcomes have status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Err joins the errors of all failed outcomes.
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

// Drifted reports whether any file would change (check or dry-run mode).
func (r *Report) Drifted() bool {
	return r.Count(StatusWouldChange) > 0
}

func (r *Runner) printOutcome(o Outcome) {
	c := color.New(statusColor(o.Status))
	if r.opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	label := DisplayPath(o.Path)
	if o.Name != "" {
		label = fmt.Sprintf("%s (%s)", label, o.Name)
	}
	_, _ = c.Fprintf(r.opts.Out, "%-12s", o.Status)
	switch o.Status {
	case StatusFailed:
		_, _ = fmt.Fprintf(r.opts.Out, " %s: %v\n", label, o.Err)
	case StatusPatched, StatusWouldChange, StatusDeclined:
		_, _ = fmt.Fprintf(r.opts.Out, " %s +%d -%d\n", label, o.Added, o.Removed)
	default:
		_, _ = fmt.Fprintf(r.opts.Out, " %s\n", label)
	}
}

func statusColor(s Status) color.Attribute {
	switch s {
	case StatusPatched:
		return color.FgGreen
	case StatusWouldChange, StatusDeclined:
		return color.FgYellow
	case StatusFailed:
		return color.FgRed
	default:
		return color.FgHiBlack
	}
}
