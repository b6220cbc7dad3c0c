package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "perimeterdemo",
	Short: "Interactive demo of the perimeter radial menu",
	Long: `perimeterdemo opens a window with a single radial menu in the middle.
Tap the anchor to toggle it, or hold it and drag over the items to pick one.
Every menu setting can be given as a flag or loaded from a JSON file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDemo,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the demo version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "perimeterdemo %s\n", version)
	},
}

func init() {
	addConfigFlags(rootCmd, &opts)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
