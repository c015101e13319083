package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/promptloom-dev/promptloom/internal/generator"
	"github.com/promptloom-dev/promptloom/internal/output"
	"github.com/promptloom-dev/promptloom/internal/profile"
)

var (
	genSeed        uint32
	genIndex       int32
	genCount       int
	genPrefix      string
	genSuffix      string
	genFilters     []string
	genExplain     bool
	genLenient     bool
	genInteractive bool
	genOutput      = TextCommonOptions()
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [profile-id]",
	Short: "Generate prompt text from a profile",
	Long: `Render one prompt (or a consecutive run of prompts) from a profile.
The same profile, seed, and index always produce the same text, so any
prompt can be reproduced from its coordinates alone.

Examples:
  promptloom generate wilds_default --seed 42 --index 7
  promptloom generate wilds_default --seed 42 --count 10
  promptloom generate scene_default --seed 3 --explain
  promptloom generate --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return runGenerateAction(cmd.Context(), id)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Uint32Var(&genSeed, "seed", 0, "Seed for positional selection")
	generateCmd.Flags().Int32Var(&genIndex, "index", 0, "Position in the prompt sequence")
	generateCmd.Flags().IntVar(&genCount, "count", 1, "Number of consecutive prompts to generate")
	generateCmd.Flags().StringVar(&genPrefix, "prefix", "", "Text prepended to each prompt")
	generateCmd.Flags().StringVar(&genSuffix, "suffix", "", "Text appended to each prompt")
	generateCmd.Flags().StringArrayVar(&genFilters, "filter", nil,
		"Category filter as name=value (repeatable); validated and logged, never changes the output")
	generateCmd.Flags().BoolVar(&genExplain, "explain", false, "Show template choice and pool picks")
	generateCmd.Flags().BoolVar(&genLenient, "lenient", false, "Render load failures inline instead of failing")
	generateCmd.Flags().BoolVarP(&genInteractive, "interactive", "i", false, "Pick profile and coordinates interactively")
	genOutput.RegisterFlags(generateCmd)
}

// runGenerateAction implements the core logic for the generate command
func runGenerateAction(ctx context.Context, id string) error {
	if err := genOutput.ValidateFlags(); err != nil {
		return err
	}
	if genExplain && genOutput.Format == formatText {
		genOutput.Format = "table"
	}

	loader, store, err := newStore()
	if err != nil {
		return err
	}

	if genInteractive {
		id, err = promptCoordinates(loader.Dir(), id)
		if err != nil {
			return err
		}
	}
	if id == "" {
		return fmt.Errorf("profile id required (or use --interactive)")
	}
	if err := recordFilters(id); err != nil {
		return err
	}

	slog.Debug("loading profile", "id", id, "dir", loader.Dir())

	p, err := store.Get(id)
	if err != nil {
		if genLenient {
			// Host-embedding behavior: the failure travels inside the text
			// stream instead of aborting the run.
			return emitText(&genOutput, fmt.Sprintf("[Error loading profile '%s': %v]", id, err))
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}

	opts := renderOptions()

	if genCount > 1 {
		result, err := generator.Batch(ctx, p, generator.BatchRequest{
			ProfileID: id,
			Seed:      genSeed,
			Start:     genIndex,
			Count:     genCount,
		}, opts...)
		if err != nil {
			return err
		}
		return emitBatch(result, &genOutput, "\n", false)
	}

	res, err := generator.Generate(p, genSeed, genIndex, opts...)
	if err != nil {
		return err
	}

	if genOutput.Format == formatText {
		return emitText(&genOutput, res.Text)
	}

	formatter, cleanup, err := genOutput.OpenFormatter()
	if err != nil {
		return err
	}
	defer cleanup()
	return formatter.Format(output.NewGenerateView(id, genSeed, genIndex, res))
}

// recordFilters validates --filter values against the profile's category and
// logs them. Filters describe a selection, they never alter it.
func recordFilters(id string) error {
	if len(genFilters) == 0 {
		return nil
	}

	values := make(map[string]string, len(genFilters))
	for _, raw := range genFilters {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid filter %q: expected name=value", raw)
		}
		if _, dup := values[name]; dup {
			return fmt.Errorf("duplicate filter %q", name)
		}
		values[name] = value
	}

	cat, ok := generator.CategoryForProfile(id)
	if !ok {
		return fmt.Errorf("profile %q belongs to no category; --filter needs a categorized profile", id)
	}
	if err := cat.ValidateFilters(values); err != nil {
		return err
	}

	slog.Debug("filters recorded", "category", cat.Name, "filters", strings.Join(genFilters, ", "))
	return nil
}

// renderOptions translates the prefix and suffix flags into generator options.
func renderOptions() []generator.Option {
	var opts []generator.Option
	if genPrefix != "" {
		opts = append(opts, generator.WithPrefix(genPrefix))
	}
	if genSuffix != "" {
		opts = append(opts, generator.WithSuffix(genSuffix))
	}
	return opts
}

// promptCoordinates runs the interactive profile and coordinate picker.
// A preselected id from the command line skips the profile select.
func promptCoordinates(dir, id string) (string, error) {
	if id == "" {
		ids, err := profile.Discover(dir, "")
		if err != nil {
			return "", err
		}
		if len(ids) == 0 {
			return "", fmt.Errorf("no profiles found in %s", dir)
		}

		options := make([]huh.Option[string], 0, len(ids))
		for _, pid := range ids {
			options = append(options, huh.NewOption(pid, pid))
		}

		if err := huh.NewSelect[string]().
			Title("Profile").
			Options(options...).
			Value(&id).
			Run(); err != nil {
			return "", err
		}
	}

	seedStr := strconv.FormatUint(uint64(genSeed), 10)
	if err := huh.NewInput().
		Title("Seed").
		Value(&seedStr).
		Run(); err != nil {
		return "", err
	}
	seedVal, err := parseUint32(seedStr)
	if err != nil {
		return "", fmt.Errorf("invalid seed %q: %w", seedStr, err)
	}
	genSeed = seedVal

	indexStr := strconv.FormatInt(int64(genIndex), 10)
	if err := huh.NewInput().
		Title("Index").
		Value(&indexStr).
		Run(); err != nil {
		return "", err
	}
	indexVal, err := strconv.ParseInt(indexStr, 0, 32)
	if err != nil {
		return "", fmt.Errorf("invalid index %q: %w", indexStr, err)
	}
	genIndex = int32(indexVal)

	return id, nil
}
