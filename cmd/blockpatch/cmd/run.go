package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"blockpatch/internal/core"
	"blockpatch/internal/log"
	"blockpatch/internal/state"
	"blockpatch/internal/tui"
)

const defaultJournal = ".blockpatch_state.json"

// newRunner builds a runner from the shared flags.
func newRunner(cmd *cobra.Command, keepGoing bool) (*core.Runner, error) {
	if interactive && (dryRun || check) {
		return nil, errors.New("--interactive cannot be combined with --dry-run or --check")
	}

	out := cmd.OutOrStdout()
	opts := core.Options{
		DryRun:       dryRun,
		Check:        check,
		RequireClean: requireClean,
		KeepGoing:    keepGoing,
		Logger:       log.New(cmd.ErrOrStderr(), verbose),
		Out:          out,
		Color:        log.IsTerminal(out),
	}
	if interactive {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return nil, errors.New("--interactive needs a terminal")
		}
		opts.Confirmer = tui.Confirmer{In: cmd.InOrStdin(), Out: out}
	}
	if !noJournal && !dryRun && !check {
		opts.Store = state.NewFileStore(journalFile)
	}
	return core.NewRunner(opts), nil
}

// run patches targets and turns the report into an exit status.
func run(cmd *cobra.Command, targets []core.Target, keepGoing bool) error {
	r, err := newRunner(cmd, keepGoing)
	if err != nil {
		return err
	}
	rep := r.Run(cmd.Context(), targets)

	logger := log.New(cmd.ErrOrStderr(), verbose)
	logger.Printf("%d patched, %d unchanged, %d would change, %d declined, %d skipped, %d failed",
		rep.Count(core.StatusPatched), rep.Count(core.StatusUnchanged), rep.Count(core.StatusWouldChange),
		rep.Count(core.StatusDeclined), rep.Count(core.StatusSkipped), rep.Count(core.StatusFailed))

	if err := rep.Err(); err != nil {
		failed := rep.Count(core.StatusFailed)
		if failed == 1 && len(targets) == 1 {
			return &exitError{code: 1}
		}
		return &exitError{code: 1, msg: fmt.Sprintf("%d of %d files failed", failed, len(targets))}
	}
	if check && rep.Drifted() {
		n := rep.Count(core.StatusWouldChange)
		return &exitError{code: 2, msg: fmt.Sprintf("%d %s out of date", n, plural(n, "file is", "files are"))}
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
