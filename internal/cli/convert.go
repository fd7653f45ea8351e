package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bonsai/internal/logging"
	"github.com/yaklabco/bonsai/pkg/config"
	"github.com/yaklabco/bonsai/pkg/treefile"
)

type convertFlags struct {
	output string
	format string
}

func newConvertCommand(global *globalFlags) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a tree to another format",
		Long: `Read the tree stored in FILE and write it as YAML, CBOR or Markdown.

The output format is taken from --format, then from the extension of the
output path, then from the configured default format. Markdown output is
the tree's text, so converting a lowered Markdown file back reproduces the
original bytes.

Output files are replaced atomically and left untouched when the content
would not change. Without --output the tree is written to standard output.`,
		Example: `  bonsai convert README.md -o README.yaml
  bonsai convert tree.yaml -o tree.cbor
  bonsai convert tree.cbor --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: standard output)")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: yaml, cbor, markdown")

	return cmd
}

func runConvert(cmd *cobra.Command, global *globalFlags, flags *convertFlags, path string) error {
	cfg, err := loadConfig(cmd, global, &config.Config{Output: flags.output})
	if err != nil {
		return err
	}

	format, err := outputFormat(flags.format, cfg.Output, cfg.Format)
	if err != nil {
		return err
	}

	ctx := logging.WithFields(commandContext(cmd), logging.FieldCommand, "convert")
	logger := logging.FromContext(ctx)
	opts := treeOptions(cfg)

	root, err := loadTree(ctx, path, opts)
	if err != nil {
		return err
	}
	defer root.Release()

	if cfg.Output == "" {
		return treefile.Encode(cmd.OutOrStdout(), root, format, opts)
	}

	written, err := treefile.Save(ctx, cfg.Output, root, format, opts)
	if err != nil {
		return err
	}

	if written {
		logger.Info("wrote tree", logging.FieldOutput, cfg.Output, logging.FieldFormat, format)
	} else {
		logger.Info("tree unchanged", logging.FieldOutput, cfg.Output)
	}
	return nil
}

// outputFormat resolves the format to write. An explicit name must be
// valid; an unrecognized output extension falls through to the default.
func outputFormat(name, output string, fallback config.TreeFormat) (treefile.Format, error) {
	if name != "" {
		format, err := treefile.ParseFormat(name)
		if err != nil {
			return "", fmt.Errorf("--format: %w", err)
		}
		return format, nil
	}

	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		if format, err := treefile.ParseFormat(ext); err == nil {
			return format, nil
		}
	}

	format, err := treefile.ParseFormat(string(fallback))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return format, nil
}
