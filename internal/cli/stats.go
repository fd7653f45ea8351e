package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bonsai/internal/logging"
	"github.com/yaklabco/bonsai/internal/ui/pretty"
	"github.com/yaklabco/bonsai/pkg/analysis"
	"github.com/yaklabco/bonsai/pkg/config"
	"github.com/yaklabco/bonsai/pkg/green"
)

type statsFlags struct {
	json     bool
	sortBy   string
	asc      bool
	noByKind bool
}

// statsOutput is the JSON document printed by stats --json.
type statsOutput struct {
	Path    string           `json:"path"`
	Report  *analysis.Report `json:"report"`
	Records recordCounts     `json:"records"`
}

type recordCounts struct {
	Allocated int64 `json:"allocated"`
	Freed     int64 `json:"freed"`
	Live      int64 `json:"live"`
}

func newStatsCommand(global *globalFlags) *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Report the shape and sharing of a tree",
		Long: `Report element counts, structural sharing, depth and a per-kind
breakdown for the tree stored in FILE.

Positions count every place an element appears; records count distinct
allocations, so a subtree shared in several places shows up once.`,
		Example: `  bonsai stats README.md
  bonsai stats --sort-by alpha --asc tree.yaml
  bonsai stats --json tree.cbor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&flags.sortBy, "sort-by", "", "sort kinds by: count, alpha, kind")
	cmd.Flags().BoolVar(&flags.asc, "asc", false, "sort kinds in ascending order")
	cmd.Flags().BoolVar(&flags.noByKind, "no-by-kind", false, "omit the per-kind breakdown")

	return cmd
}

func runStats(cmd *cobra.Command, global *globalFlags, flags *statsFlags, path string) error {
	cliCfg := &config.Config{JSON: flags.json}
	if flags.sortBy != "" {
		if !analysis.SortField(flags.sortBy).IsValid() {
			return fmt.Errorf("%w: --sort-by %q: must be count, alpha or kind", ErrInvalidUsage, flags.sortBy)
		}
		cliCfg.Stats.SortBy = flags.sortBy
	}
	cliCfg.Stats.SortAsc = flags.asc
	if cmd.Flags().Changed("no-by-kind") {
		byKind := !flags.noByKind
		cliCfg.Stats.ByKind = &byKind
	}

	cfg, err := loadConfig(cmd, global, cliCfg)
	if err != nil {
		return err
	}

	ctx := logging.WithFields(commandContext(cmd), logging.FieldCommand, "stats")
	logger := logging.FromContext(ctx)
	opts := treeOptions(cfg)

	root, err := loadTree(ctx, path, opts)
	if err != nil {
		return err
	}

	report := analysis.Analyze(root, analysis.Options{
		IncludeByKind: cfg.Stats.KindsShown(),
		SortBy:        analysis.SortField(cfg.Stats.SortBy),
		SortDesc:      !cfg.Stats.SortAsc,
		KindName:      opts.KindNamer(),
	})
	root.Release()

	stats := green.ReadStats()
	records := recordCounts{Allocated: stats.Allocated, Freed: stats.Freed, Live: stats.Live()}

	logger.Debug("analyzed tree",
		logging.FieldNodes, report.Totals.Nodes,
		logging.FieldTokens, report.Totals.Tokens,
		logging.FieldRecords, report.Totals.Records,
		logging.FieldDistinct, report.Totals.Distinct,
		logging.FieldDepth, report.Totals.MaxDepth,
		logging.FieldBytes, report.Totals.TextBytes,
		logging.FieldAllocated, records.Allocated,
		logging.FieldFreed, records.Freed,
		logging.FieldLive, records.Live,
	)

	out := cmd.OutOrStdout()
	if cfg.JSON {
		return writeJSON(out, statsOutput{Path: path, Report: report, Records: records})
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))

	text := styles.FormatSummary(path, report)
	if len(report.ByKind) > 0 {
		table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(out))
		text += "\n" + table.FormatKindTable(report.ByKind)
	}
	text += "\n" + styles.FormatAllocations(pretty.Allocations(records))

	if _, err := fmt.Fprint(out, text); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
