// Package cli provides the Cobra command structure for bonsai.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/bonsai/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	flavor     string
}

// NewRootCommand creates the root bonsai command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "bonsai",
		Short: "Inspect, compare and convert immutable syntax trees",
		Long: `bonsai works with green trees: immutable, structurally shared syntax
trees whose nodes record only their kind, their text length and their
children.

Markdown files are lowered into lossless trees, and trees can be stored
as YAML or CBOR tree files. bonsai prints trees, reports their shape and
sharing, compares two trees structurally and converts between formats.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")
			if flags.debug {
				logger.SetLevel(logging.ParseLevel("debug"))
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flags.flavor, "flavor", "",
		"Markdown flavor for Markdown input: commonmark, gfm")

	rootCmd.AddCommand(newDumpCommand(flags))
	rootCmd.AddCommand(newStatsCommand(flags))
	rootCmd.AddCommand(newDiffCommand(flags))
	rootCmd.AddCommand(newConvertCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(flags).ApplyToCommand(rootCmd)

	return rootCmd
}
