package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptloom-dev/promptloom/internal/lint"
	"github.com/promptloom-dev/promptloom/internal/profile"
)

var (
	lintStrict bool
	lintOutput = DefaultCommonOptions()
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint [profile-id...]",
	Short: "Check profiles for errors and suspicious constructs",
	Long: `Inspect profiles and report findings by severity. Errors are documents
the generator would refuse to load, warnings are legal constructs that
usually indicate a mistake, and notes are housekeeping.

With no arguments every discovered profile is checked. The exit status is
non-zero when errors are found, or with --strict when warnings are found
as well. Use --format sarif to feed findings into code-scanning tools.`,
	RunE: func(_ *cobra.Command, args []string) error {
		return runLintAction(args)
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Treat warnings as failures")
	lintOutput.RegisterFlags(lintCmd)
}

// runLintAction implements the core logic for the lint command
func runLintAction(ids []string) error {
	if err := lintOutput.ValidateFlags(); err != nil {
		return err
	}

	loader, err := newLoader()
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		ids, err = profile.Discover(loader.Dir(), "")
		if err != nil {
			return err
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("no profiles found in %s", loader.Dir())
	}

	report := lint.New(loader).Run(ids)

	formatter, cleanup, err := lintOutput.OpenFormatter()
	if err != nil {
		return err
	}
	defer cleanup()
	if err := formatter.Format(report); err != nil {
		return err
	}

	if report.Failed(lintStrict) {
		errs, warnings, _ := report.Counts()
		return fmt.Errorf("lint failed: %d error(s), %d warning(s)", errs, warnings)
	}
	return nil
}
