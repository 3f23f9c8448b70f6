package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "filament",
		Short: "Signal-driven UI runtime for Go",
		Long: `Filament renders reactive component trees to the DOM, to HTML
strings, and to terminals from a single tree description.

  • Fine-grained signals: only what changed re-renders
  • Keyed reconciliation with minimal moves
  • SSR with islands and client hydration
  • Live sessions over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
