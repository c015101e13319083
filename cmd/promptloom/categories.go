package main

import (
	"github.com/spf13/cobra"

	"github.com/promptloom-dev/promptloom/internal/generator"
)

var categoriesOutput = DefaultCommonOptions()

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List prompt categories and their filters",
	Long: `List the built-in prompt categories with their profile prefixes, default
profiles, and filter choices.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runCategoriesAction()
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesOutput.RegisterFlags(categoriesCmd)
}

// runCategoriesAction implements the core logic for the categories command
func runCategoriesAction() error {
	if err := categoriesOutput.ValidateFlags(); err != nil {
		return err
	}

	formatter, cleanup, err := categoriesOutput.OpenFormatter()
	if err != nil {
		return err
	}
	defer cleanup()
	return formatter.Format(generator.Categories())
}
