package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptloom-dev/promptloom/internal/generator"
)

var infoOutput = DefaultCommonOptions()

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <profile-id>",
	Short: "Show profile metadata and the size of its prompt space",
	Long: `Show a profile's metadata, its pool sizes, and the exact number of
distinct prompts it can produce.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runInfoAction(args[0])
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoOutput.RegisterFlags(infoCmd)
}

// runInfoAction implements the core logic for the info command
func runInfoAction(id string) error {
	if err := infoOutput.ValidateFlags(); err != nil {
		return err
	}

	_, store, err := newStore()
	if err != nil {
		return err
	}

	p, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	formatter, cleanup, err := infoOutput.OpenFormatter()
	if err != nil {
		return err
	}
	defer cleanup()
	return formatter.Format(generator.Info(p))
}
