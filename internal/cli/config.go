package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bonsai/internal/configloader"
	"github.com/yaklabco/bonsai/internal/logging"
	"github.com/yaklabco/bonsai/pkg/config"
	"github.com/yaklabco/bonsai/pkg/green"
	"github.com/yaklabco/bonsai/pkg/lower"
	"github.com/yaklabco/bonsai/pkg/treefile"
)

// loadConfig resolves the configuration for cmd. cliCfg carries values set
// by the command's own flags; the global flags are applied on top.
func loadConfig(cmd *cobra.Command, flags *globalFlags, cliCfg *config.Config) (*config.Config, error) {
	result, err := resolveConfig(cmd, flags, cliCfg)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// resolveConfig is loadConfig that also reports where the configuration
// came from.
func resolveConfig(cmd *cobra.Command, flags *globalFlags, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := logging.FromContext(cmd.Context())

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	if flags.color != "" {
		cliCfg.Color = config.ColorMode(flags.color)
	}
	if flags.flavor != "" {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	for _, path := range result.LoadedFrom {
		logger.Debug("loaded configuration file", logging.FieldConfigFile, path)
	}
	logger.Debug("configuration loaded",
		logging.FieldWorkingDir, workDir,
		logging.FieldFlavor, result.Config.Flavor,
		logging.FieldFormat, result.Config.Format,
		logging.FieldColor, result.Config.Color,
	)

	return result, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// treeOptions maps the configuration onto tree file options. Markdown kind
// names are always known; configured names add to or override them.
func treeOptions(cfg *config.Config) treefile.Options {
	kinds := lower.KindNames()
	for name, kind := range cfg.Kinds {
		kinds[name] = green.Kind(kind)
	}
	return treefile.Options{
		Kinds:  kinds,
		Flavor: string(cfg.Flavor),
	}
}

// loadTree reads the tree at path. The caller owns the returned node.
func loadTree(ctx context.Context, path string, opts treefile.Options) (green.Node, error) {
	logger := logging.FromContext(ctx)

	root, format, err := treefile.Load(ctx, path, "", opts)
	if err != nil {
		return green.Node{}, err
	}

	logger.Debug("loaded tree",
		logging.FieldPath, path,
		logging.FieldFormat, format,
		logging.FieldTextLen, root.TextLen(),
	)
	return root, nil
}
