package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptloom-dev/promptloom/internal/version"
)

var versionShort bool

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of promptloom",
	Run: func(_ *cobra.Command, _ []string) {
		info := version.Get()
		if versionShort {
			fmt.Println(info.Version)
			return
		}
		fmt.Printf("promptloom version %s\n", info.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}
