package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bonsai/internal/logging"
	"github.com/yaklabco/bonsai/internal/ui/pretty"
	"github.com/yaklabco/bonsai/pkg/config"
	"github.com/yaklabco/bonsai/pkg/green"
)

type dumpFlags struct {
	maxDepth     int
	maxTextWidth int
	noTrivia     bool
}

func newDumpCommand(global *globalFlags) *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print a tree",
		Long: `Print the tree stored in FILE as an indented outline.

Nodes show their kind and text length; tokens show their kind and quoted
text, truncated to the terminal width.`,
		Example: `  bonsai dump README.md
  bonsai dump --max-depth 2 tree.yaml
  bonsai dump --no-trivia --flavor gfm CHANGELOG.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "stop printing below this depth (0 = unlimited)")
	cmd.Flags().IntVar(&flags.maxTextWidth, "width", 0, "truncate token text to this many characters (0 = terminal width)")
	cmd.Flags().BoolVar(&flags.noTrivia, "no-trivia", false, "hide trivia tokens")

	return cmd
}

func runDump(cmd *cobra.Command, global *globalFlags, flags *dumpFlags, path string) error {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("max-depth") {
		cliCfg.Dump.MaxDepth = flags.maxDepth
	}
	if cmd.Flags().Changed("width") {
		cliCfg.Dump.MaxTextWidth = flags.maxTextWidth
	}
	if cmd.Flags().Changed("no-trivia") {
		show := !flags.noTrivia
		cliCfg.Dump.ShowTrivia = &show
	}

	cfg, err := loadConfig(cmd, global, cliCfg)
	if err != nil {
		return err
	}

	ctx := logging.WithFields(commandContext(cmd), logging.FieldCommand, "dump")
	opts := treeOptions(cfg)

	root, err := loadTree(ctx, path, opts)
	if err != nil {
		return err
	}
	defer root.Release()

	out := cmd.OutOrStdout()
	treeOpts := pretty.TreeOptions{
		KindName:     opts.KindNamer(),
		Width:        pretty.TerminalWidth(out),
		MaxTextWidth: cfg.Dump.MaxTextWidth,
		MaxDepth:     cfg.Dump.MaxDepth,
	}
	if trivia, ok := opts.Kinds["trivia"]; ok {
		treeOpts.TriviaKinds = map[green.Kind]bool{trivia: true}
		if !cfg.Dump.TriviaShown() {
			treeOpts.HideKinds = treeOpts.TriviaKinds
		}
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))
	formatter := pretty.NewTreeFormatter(styles, treeOpts)

	if _, err := fmt.Fprint(out, formatter.FormatTree(root)); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}
