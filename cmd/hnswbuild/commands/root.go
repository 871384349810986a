package commands

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hnswbuild",
	Short: "Build and inspect an HNSW graph from generated vectors",
	Long: `hnswbuild builds an in-memory HNSW graph from randomly generated
vectors and reports per-layer population and degree statistics.

Configuration layers in increasing precedence: built-in defaults,
~/.hnswbuild/config.yaml (or --config), then command-line flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default: ~/.hnswbuild/config.yaml)")
	rootCmd.AddCommand(buildCmd)
}
