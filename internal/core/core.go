// Package core drives block patches through the load, locate, splice and
// write pipeline and reports what happened to each file.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"blockpatch/internal/clock"
	"blockpatch/internal/diff"
	"blockpatch/internal/gitutil"
	"blockpatch/internal/log"
	"blockpatch/internal/rewrite"
	"blockpatch/internal/state"
	"blockpatch/pkg/block"
)

// ErrDirty is reported when RequireClean is set and the target has
// uncommitted changes.
var ErrDirty = errors.New("file has uncommitted changes")

// Confirmer asks whether a prepared change should be written.
type Confirmer interface {
	Confirm(path string, hunks []diff.Hunk) (bool, error)
}

// Target is one file to patch with one job.
type Target struct {
	Name string // recipe entry name, empty for ad-hoc runs
	Path string
	Job  block.Job
	// Skip is set when the recipe's when condition excluded the file.
	Skip bool
}

// Options configures a Runner. The zero value patches files and prints
// nothing.
type Options struct {
	DryRun       bool // print the diff, write nothing
	Check        bool // write nothing, report files that would change
	RequireClean bool // refuse to patch files with uncommitted changes
	KeepGoing    bool // continue with the next file after a failure

	Confirmer Confirmer
	Store     state.Store // nil disables the journal
	Clock     clock.Clock
	Logger    *log.Logger
	Out       io.Writer
	Color     bool
}

// Runner applies targets one at a time.
type Runner struct {
	opts Options
}

func NewRunner(opts Options) *Runner {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = &log.Logger{W: io.Discard}
	}
	return &Runner{opts: opts}
}

// Run patches every target in order. Unless KeepGoing is set it stops at
// the first failure; targets after it are not touched.
func (r *Runner) Run(ctx context.Context, targets []Target) *Report {
	rep := &Report{}
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			o := Outcome{Name: t.Name, Path: t.Path, Status: StatusFailed, Err: err}
			rep.add(o)
			r.printOutcome(o)
			break
		}
		o := r.patch(ctx, t)
		rep.add(o)
		r.printOutcome(o)
		if o.Status == StatusFailed && !r.opts.KeepGoing {
			break
		}
	}
	return rep
}

func (r *Runner) patch(ctx context.Context, t Target) Outcome {
	o := Outcome{Name: t.Name, Path: t.Path}
	if t.Skip {
		o.Status = StatusSkipped
		return o
	}

	if !t.Job.Conventional() {
		r.opts.Logger.Warnf("%s: payload does not begin with the start marker; patching again will not find it", t.Path)
	}

	res, err := rewrite.Prepare(t.Path, t.Job)
	if err != nil {
		return o.fail(err)
	}
	o.Region = res.Region
	o.StartLine, o.EndLine = res.StartLine, res.EndLine
	r.opts.Logger.Printf("%s: start marker at line %d, end marker at line %d, replacing %d bytes with %d",
		t.Path, res.StartLine, res.EndLine, res.Region.Len(), len(t.Job.Payload))

	if !res.Changed() {
		o.Status = StatusUnchanged
		return o
	}

	hunks := diff.Compute(string(res.Before), string(res.After))
	o.Added, o.Removed = diff.Stat(hunks)

	if r.opts.DryRun || r.opts.Check {
		if r.opts.DryRun || r.opts.Logger.Enabled {
			if err := diff.Render(r.opts.Out, r.displayPath(t.Path), hunks, r.opts.Color); err != nil {
				return o.fail(err)
			}
		}
		o.Status = StatusWouldChange
		return o
	}

	if r.opts.RequireClean {
		dirty, err := gitutil.IsDirty(ctx, t.Path)
		if err != nil {
			return o.fail(fmt.Errorf("checking git status: %w", err))
		}
		if dirty {
			return o.fail(fmt.Errorf("%s: %w", t.Path, ErrDirty))
		}
	}

	if r.opts.Confirmer != nil {
		ok, err := r.opts.Confirmer.Confirm(r.displayPath(t.Path), hunks)
		if err != nil {
			return o.fail(fmt.Errorf("confirmation: %w", err))
		}
		if !ok {
			o.Status = StatusDeclined
			return o
		}
	}

	if err := res.Commit(); err != nil {
		return o.fail(err)
	}
	o.Status = StatusPatched
	r.record(ctx, t, res)
	return o
}

// record appends a journal entry. Failures are warnings: the file has
// already been written.
func (r *Runner) record(ctx context.Context, t Target, res *rewrite.Result) {
	if r.opts.Store == nil {
		return
	}
	commit, err := gitutil.HeadCommit(ctx, filepath.Dir(t.Path))
	if err != nil {
		r.opts.Logger.Printf("no commit recorded for %s: %v", t.Path, err)
	}
	rec := state.PatchRecord{
		File:        r.displayPath(t.Path),
		Name:        t.Name,
		StartMarker: string(t.Job.Start),
		PayloadHash: block.Hash(t.Job.Payload),
		BeforeHash:  block.Hash(res.Before),
		AfterHash:   block.Hash(res.After),
		Commit:      commit,
		AppliedAt:   r.opts.Clock.Now(),
	}
	if err := r.opts.Store.Append(rec); err != nil {
		r.opts.Logger.Warnf("could not update journal: %v", err)
	}
}

// displayPath shortens absolute paths under the working directory.
func (r *Runner) displayPath(path string) string {
	return DisplayPath(path)
}

// DisplayPath returns path relative to the working directory when it lies
// beneath it, with forward slashes.
func DisplayPath(path string) string {
	path = filepath.Clean(path)
	if filepath.IsAbs(path) {
		if wd, err := filepath.Abs("."); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil && filepath.IsLocal(rel) {
				path = rel
			}
		}
	}
	return filepath.ToSlash(path)
}
