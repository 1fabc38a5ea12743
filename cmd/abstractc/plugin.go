package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"abstractc/internal/plugin"
)

var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Serve expansion requests from a host compiler on stdin/stdout",
	Long: `Plugin speaks length-prefixed msgpack frames on stdin and stdout until the
host closes the stream or sends a shutdown request. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runPlugin,
}

func init() {
	pluginCmd.Flags().Int("max-frame", plugin.DefaultMaxFrame, "largest accepted request frame in bytes")
}

func runPlugin(cmd *cobra.Command, args []string) error {
	maxFrame, err := cmd.Flags().GetInt("max-frame")
	if err != nil {
		return fmt.Errorf("failed to get max-frame flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return plugin.Serve(cmd.Context(), os.Stdin, os.Stdout, plugin.Options{
		MaxFrame:       maxFrame,
		MaxDiagnostics: maxDiagnostics,
		Logger:         logger,
	})
}
