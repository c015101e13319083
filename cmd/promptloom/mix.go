package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/promptloom-dev/promptloom/internal/output"
)

var (
	mixHex    bool
	mixOutput = TextCommonOptions()
)

// mixCmd represents the mix command
var mixCmd = &cobra.Command{
	Use:   "mix <a> <b> <c> <d>",
	Short: "Fold four seed components into one derived seed",
	Long: `Mix four seed components into a single derived seed. The mix is order
sensitive, so independent controls (base seed, variant, category, index)
fold into one stream without their effects colliding.

Components accept decimal or 0x-prefixed hex.

Examples:
  promptloom mix 42 7 0 0
  promptloom mix 0xDEADBEEF 0x12345678 42 7 --hex`,
	Args: cobra.ExactArgs(4),
	RunE: func(_ *cobra.Command, args []string) error {
		return runMixAction(args)
	},
}

func init() {
	rootCmd.AddCommand(mixCmd)
	mixCmd.Flags().BoolVar(&mixHex, "hex", false, "Print the mixed seed in hex")
	mixOutput.RegisterFlags(mixCmd)
}

// runMixAction implements the core logic for the mix command
func runMixAction(args []string) error {
	if err := mixOutput.ValidateFlags(); err != nil {
		return err
	}

	var parts [4]uint32
	for i, arg := range args {
		v, err := parseUint32(arg)
		if err != nil {
			return fmt.Errorf("invalid seed component %q: %w", arg, err)
		}
		parts[i] = v
	}

	view := output.NewMixView(parts[0], parts[1], parts[2], parts[3])

	if mixOutput.Format == formatText {
		if mixHex {
			return emitText(&mixOutput, view.Hex)
		}
		return emitText(&mixOutput, strconv.FormatUint(uint64(view.Mixed), 10))
	}

	formatter, cleanup, err := mixOutput.OpenFormatter()
	if err != nil {
		return err
	}
	defer cleanup()
	return formatter.Format(view)
}
