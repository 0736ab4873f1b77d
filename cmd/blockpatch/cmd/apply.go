package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"blockpatch/internal/core"
	"blockpatch/internal/recipe"
)

var keepGoing bool

var applyCmd = &cobra.Command{
	Use:   "apply [recipe.yml]",
	Short: "Apply every patch in a recipe file",
	Long: `apply reads a YAML recipe and patches every file it names. Without an
argument the recipe is found by looking for .blockpatch.yml in the working
directory and its parents, up to the repository root. All payloads and
file lists are resolved before the first file is written.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := recipePath(args)
		if err != nil {
			return err
		}
		rcp, err := recipe.Load(path)
		if err != nil {
			return err
		}
		targets, err := core.Plan(rcp, cmd.InOrStdin())
		if err != nil {
			return err
		}
		return run(cmd, targets, keepGoing)
	},
}

func recipePath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	path, err := recipe.Discover(wd)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.New("no .blockpatch.yml found in this directory or its parents")
	}
	return path, nil
}

func init() {
	applyCmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "continue with the next file after a failure")
}
