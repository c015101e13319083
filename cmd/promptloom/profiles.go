package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/promptloom-dev/promptloom/internal/generator"
	"github.com/promptloom-dev/promptloom/internal/output"
	"github.com/promptloom-dev/promptloom/internal/profile"
)

var (
	profilesCategory string
	profilesOutput   = DefaultCommonOptions()
)

// profilesCmd represents the profiles command
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List discovered profiles",
	Long: `List the profiles in the profiles directory with their pool counts and
prompt-space sizes. The default variant of a category sorts first, matching
the pick order of hosts that embed the generator.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runProfilesAction()
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.Flags().StringVar(&profilesCategory, "category", "", "Only list profiles of this category")
	profilesOutput.RegisterFlags(profilesCmd)
}

// runProfilesAction implements the core logic for the profiles command
func runProfilesAction() error {
	if err := profilesOutput.ValidateFlags(); err != nil {
		return err
	}

	loader, store, err := newStore()
	if err != nil {
		return err
	}

	prefix := ""
	if profilesCategory != "" {
		category, ok := generator.CategoryByName(profilesCategory)
		if !ok {
			return fmt.Errorf("unknown category: %s", profilesCategory)
		}
		prefix = category.Prefix
	}

	ids, err := profile.Discover(loader.Dir(), prefix)
	if err != nil {
		return err
	}

	summaries := make([]output.ProfileSummary, 0, len(ids))
	for _, id := range ids {
		p, err := store.Get(id)
		if err != nil {
			// The listing stays useful with broken files present; lint is
			// the strict view.
			slog.Warn("skipping unreadable profile", "id", id, "error", err)
			continue
		}
		summaries = append(summaries, output.NewProfileSummary(id, p))
	}

	formatter, cleanup, err := profilesOutput.OpenFormatter()
	if err != nil {
		return err
	}
	defer cleanup()
	return formatter.Format(summaries)
}
