package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"blockpatch/internal/core"
	"blockpatch/internal/log"
	"blockpatch/internal/state"
	"blockpatch/pkg/block"
)

var historyCmd = &cobra.Command{
	Use:   "history [file]",
	Short: "List patches recorded in the journal",
	Long: `history prints the journal, oldest first. The newest record of each file
is marked current when the file still has the content that patch wrote,
and modified when it has been edited since.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := state.NewFileStore(journalFile).Load()
		if err != nil {
			return fmt.Errorf("reading journal %s: %w", journalFile, err)
		}
		if len(args) == 1 {
			j = j.ForFile(core.DisplayPath(args[0]))
		}
		out := cmd.OutOrStdout()
		if len(j) == 0 {
			_, _ = fmt.Fprintln(out, "no patches recorded")
			return nil
		}
		printHistory(out, j, log.IsTerminal(out))
		return nil
	},
}

func printHistory(w io.Writer, j state.Journal, colored bool) {
	dim := color.New(color.FgHiBlack)
	current := color.New(color.FgGreen)
	modified := color.New(color.FgYellow)
	for _, c := range []*color.Color{dim, current, modified} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	last := make(map[string]int)
	for i, rec := range j {
		last[rec.File] = i
	}

	for i, rec := range j {
		commit := rec.Commit
		if commit == "" {
			commit = "-"
		}
		label := rec.File
		if rec.Name != "" {
			label = fmt.Sprintf("%s (%s)", label, rec.Name)
		}
		_, _ = dim.Fprintf(w, "%s  %-9s", rec.AppliedAt.Local().Format("2006-01-02 15:04:05"), commit)
		_, _ = fmt.Fprintf(w, " %s", label)

		if last[rec.File] == i {
			switch fileState(j, rec.File) {
			case "current":
				_, _ = current.Fprint(w, "  current")
			case "modified":
				_, _ = modified.Fprint(w, "  modified")
			case "missing":
				_, _ = modified.Fprint(w, "  missing")
			}
		}
		_, _ = fmt.Fprintln(w)
	}
}

// fileState compares the file on disk with the newest record for it.
func fileState(j state.Journal, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "missing"
	}
	if j.UpToDate(path, block.Hash(data)) {
		return "current"
	}
	return "modified"
}
