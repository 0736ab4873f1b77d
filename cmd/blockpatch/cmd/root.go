package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"blockpatch/internal/core"
	"blockpatch/internal/recipe"
	"blockpatch/pkg/block"
)

// Flags shared by every command that patches files.
var (
	dryRun       bool
	check        bool
	interactive  bool
	requireClean bool
	journalFile  string
	noJournal    bool
	verbose      bool
)

// Flags of the ad-hoc form.
var (
	startMarker string
	endMarker   string
	payload     string
	payloadFile string
	blockName   string
	escapes     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blockpatch [file]",
	Short: "Replace a marker-delimited block of text in a file",
	Long: `blockpatch finds the first occurrence of a start marker and of an end
marker in a file and replaces everything from the start marker up to (not
including) the end marker with a payload. The end marker and everything
around the block are preserved byte for byte, and the file is only
written when every step succeeded.`,
	Example: `  blockpatch lib/quests_screen.dart \
    --start '// QUEST CARD' --end '// EMPTY STATE' \
    --payload-file snippets.md --block quest-card

  blockpatch notes.txt --escapes --start '<<<\n' --end '>>>' --payload '<<<\nnew\n'`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := adHocJob(cmd)
		if err != nil {
			return err
		}
		return run(cmd, []core.Target{{Path: args[0], Job: job}}, false)
	},
}

// adHocJob builds the job described by the root command's flags.
func adHocJob(cmd *cobra.Command) (block.Job, error) {
	if startMarker == "" || endMarker == "" {
		return block.Job{}, errors.New("--start and --end are required")
	}
	hasPayload := cmd.Flags().Changed("payload")
	switch {
	case hasPayload && payloadFile != "":
		return block.Job{}, errors.New("--payload and --payload-file are mutually exclusive")
	case !hasPayload && payloadFile == "":
		return block.Job{}, errors.New("one of --payload or --payload-file is required")
	case blockName != "" && payloadFile == "":
		return block.Job{}, errors.New("--block requires --payload-file")
	case interactive && payloadFile == recipe.StdinName:
		return block.Job{}, errors.New("--interactive cannot read the payload from stdin")
	}

	start, end, text := startMarker, endMarker, payload
	if escapes {
		for _, s := range []*string{&start, &end, &text} {
			u, err := recipe.Unescape(*s)
			if err != nil {
				return block.Job{}, fmt.Errorf("--escapes: %w", err)
			}
			*s = u
		}
	}

	job := block.Job{Start: block.Marker(start), End: block.Marker(end), Payload: block.Payload(text)}
	if payloadFile != "" {
		p, err := recipe.ReadPayload(payloadFile, blockName, cmd.InOrStdin())
		if err != nil {
			return block.Job{}, err
		}
		job.Payload = p
	}
	return job, nil
}

// exitError carries the process exit status for Execute. An empty message
// means the details were already printed.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

// exitCode prints err and returns the status to exit with.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	code := 1
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
	}
	if msg := err.Error(); msg != "" {
		prefix := color.New(color.FgRed, color.Bold)
		_, _ = prefix.Fprint(os.Stderr, "error: ")
		_, _ = fmt.Fprintln(os.Stderr, msg)
	}
	return code
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&dryRun, "dry-run", false, "print the diff instead of writing")
	pf.BoolVar(&check, "check", false, "write nothing; exit with status 2 if a file would change")
	pf.BoolVarP(&interactive, "interactive", "i", false, "show each diff and ask before writing")
	pf.BoolVar(&requireClean, "require-clean", false, "refuse to patch files with uncommitted git changes")
	pf.StringVar(&journalFile, "journal", defaultJournal, "journal file recording applied patches")
	pf.BoolVar(&noJournal, "no-journal", false, "do not record applied patches")
	pf.BoolVarP(&verbose, "verbose", "v", false, "print marker positions and diagnostics to stderr")

	f := rootCmd.Flags()
	f.StringVarP(&startMarker, "start", "s", "", "start marker, kept as the head of the block")
	f.StringVarP(&endMarker, "end", "e", "", "end marker, preserved after the block")
	f.StringVarP(&payload, "payload", "p", "", "replacement text, including the start marker")
	f.StringVarP(&payloadFile, "payload-file", "f", "", `read the payload from a file ("-" for stdin)`)
	f.StringVar(&blockName, "block", "", "use the fenced code block with this name from a Markdown payload file")
	f.BoolVar(&escapes, "escapes", false, `interpret Go escapes such as \n and \u2500 in --start, --end and --payload`)

	rootCmd.AddCommand(applyCmd, historyCmd)
}
