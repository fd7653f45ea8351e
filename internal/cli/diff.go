package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/bonsai/internal/logging"
	"github.com/yaklabco/bonsai/internal/ui/pretty"
	"github.com/yaklabco/bonsai/pkg/analysis"
	"github.com/yaklabco/bonsai/pkg/config"
	"github.com/yaklabco/bonsai/pkg/green"
)

type diffFlags struct {
	json bool
}

// diffOutput is the JSON document printed by diff --json.
type diffOutput struct {
	Left    string      `json:"left"`
	Right   string      `json:"right"`
	Equal   bool        `json:"equal"`
	Order   int         `json:"order"`
	Path    string      `json:"path,omitempty"`
	Reason  string      `json:"reason,omitempty"`
	LeftAt  *sideOutput `json:"leftAt,omitempty"`
	RightAt *sideOutput `json:"rightAt,omitempty"`
}

type sideOutput struct {
	Kind     string `json:"kind"`
	TextLen  uint32 `json:"textLen"`
	Text     string `json:"text,omitempty"`
	Children int    `json:"children,omitempty"`
}

func newDiffCommand(global *globalFlags) *cobra.Command {
	flags := &diffFlags{}

	cmd := &cobra.Command{
		Use:   "diff A B",
		Short: "Compare two trees structurally",
		Long: `Compare the trees stored in A and B.

The trees are equal when they have the same shape, kinds and token text.
Otherwise the first difference in pre-order is printed together with the
total order of the two trees, and the command exits with status 1.`,
		Example: `  bonsai diff before.md after.md
  bonsai diff tree.yaml tree.cbor
  bonsai diff --json a.yaml b.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, global, flags, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print the result as JSON")

	return cmd
}

func runDiff(cmd *cobra.Command, global *globalFlags, flags *diffFlags, left, right string) error {
	cfg, err := loadConfig(cmd, global, &config.Config{JSON: flags.json})
	if err != nil {
		return err
	}

	ctx := logging.WithFields(commandContext(cmd), logging.FieldCommand, "diff")
	logger := logging.FromContext(ctx)
	opts := treeOptions(cfg)

	var leftRoot, rightRoot green.Node
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		leftRoot, err = loadTree(gctx, left, opts)
		return err
	})
	group.Go(func() error {
		var err error
		rightRoot, err = loadTree(gctx, right, opts)
		return err
	})
	err = group.Wait()
	for _, root := range []green.Node{leftRoot, rightRoot} {
		if !root.IsZero() {
			defer root.Release()
		}
	}
	if err != nil {
		return err
	}

	d := analysis.Diff(leftRoot, rightRoot)
	if d == nil {
		logger.Debug("trees are equal", logging.FieldEqual, true)
	} else {
		logger.Debug("trees differ",
			logging.FieldEqual, false,
			logging.FieldOrder, d.Order,
			logging.FieldDiffPath, d.PathString(),
		)
	}

	kindName := opts.KindNamer()
	out := cmd.OutOrStdout()
	if cfg.JSON {
		if err := writeJSON(out, newDiffOutput(left, right, d, kindName)); err != nil {
			return err
		}
	} else {
		styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))
		if _, err := fmt.Fprint(out, styles.FormatDifference(left, right, d, kindName)); err != nil {
			return fmt.Errorf("write diff: %w", err)
		}
	}

	if d != nil {
		return ErrTreesDiffer
	}
	return nil
}

func newDiffOutput(left, right string, d *analysis.Difference, kindName func(green.Kind) string) diffOutput {
	out := diffOutput{Left: left, Right: right, Equal: d == nil}
	if d == nil {
		return out
	}
	out.Order = d.Order
	out.Path = d.PathString()
	out.Reason = string(d.Reason)
	out.LeftAt = newSideOutput(d.Left, kindName)
	out.RightAt = newSideOutput(d.Right, kindName)
	return out
}

func newSideOutput(el green.Element, kindName func(green.Kind) string) *sideOutput {
	if el == nil {
		return nil
	}
	side := &sideOutput{Kind: kindName(el.Kind()), TextLen: uint32(el.TextLen())}
	switch el := el.(type) {
	case green.Token:
		side.Text = el.Text()
	case green.Node:
		side.Children = el.NumChildren()
	}
	return side
}
