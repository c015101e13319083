package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/promptloom-dev/promptloom/internal/generator"
)

var (
	batchSeed      uint32
	batchStart     int32
	batchCount     int
	batchWhere     string
	batchWorkers   int
	batchNumbered  bool
	batchSeparator string
	batchOutput    = TextCommonOptions()
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <profile-id>",
	Short: "Generate a run of prompts from consecutive indices",
	Long: `Render count prompts starting at start. Items are rendered concurrently
and returned in index order, so a batch is exactly the prompts the generate
command would produce one index at a time.

Filtering:
  The --where expression sees each item as {index, text, seed}.
  --where "index % 2 == 0"          Keep even indices
  --where "len(text) < 80"          Keep short prompts
  --where 'text contains "wolf"'    Keep prompts mentioning wolves`,
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Assigned here rather than in the literal to avoid an initialization
	// cycle: runBatchAction reads batchCmd's flags.
	batchCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runBatchAction(cmd.Context(), args[0])
	}

	batchCmd.Flags().Uint32Var(&batchSeed, "seed", 0, "Seed for positional selection")
	batchCmd.Flags().Int32Var(&batchStart, "start", 0, "First index of the run")
	batchCmd.Flags().IntVar(&batchCount, "count", 4, "Number of prompts to generate (1-100)")
	batchCmd.Flags().StringVar(&batchWhere, "where", "", "Filter expression over {index, text, seed}")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Concurrent renders (default: one per CPU)")
	batchCmd.Flags().BoolVar(&batchNumbered, "numbered", false, "Number items by position in the run")
	batchCmd.Flags().StringVar(&batchSeparator, "separator", generator.DefaultSeparator, "Separator between items in text output")
	batchOutput.RegisterFlags(batchCmd)
}

// runBatchAction implements the core logic for the batch command
func runBatchAction(ctx context.Context, id string) error {
	if err := batchOutput.ValidateFlags(); err != nil {
		return err
	}
	if batchNumbered && batchCmd.Flags().Changed("separator") {
		return fmt.Errorf("--numbered and --separator are mutually exclusive")
	}

	_, store, err := newStore()
	if err != nil {
		return err
	}

	p, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	result, err := generator.Batch(ctx, p, generator.BatchRequest{
		ProfileID: id,
		Seed:      batchSeed,
		Start:     batchStart,
		Count:     batchCount,
		Where:     batchWhere,
		Workers:   batchWorkers,
	})
	if err != nil {
		return err
	}

	slog.Info("batch complete",
		"run_id", result.RunID.String(),
		"profile", id,
		"generated", result.Generated,
		"kept", len(result.Items),
		"duration", result.Duration)

	return emitBatch(result, &batchOutput, batchSeparator, batchNumbered)
}

// emitBatch renders a batch result in the requested format. In text mode the
// items are joined with sep, or numbered one per line.
func emitBatch(result *generator.BatchResult, opts *CommonOptions, sep string, numbered bool) error {
	if opts.Format == formatText {
		text := result.Join(sep)
		if numbered {
			text = result.Numbered()
		}
		return emitText(opts, text)
	}

	formatter, cleanup, err := opts.OpenFormatter()
	if err != nil {
		return err
	}
	defer cleanup()
	return formatter.Format(result)
}
