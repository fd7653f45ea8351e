package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bonsai/internal/configloader"
	"github.com/yaklabco/bonsai/internal/logging"
)

type configFlags struct {
	env bool
}

func newConfigCommand(global *globalFlags) *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration bonsai would use in the current directory, after
merging the system, user, project and --config files with BONSAI_*
environment variables and global flags.

The output is valid YAML and can be saved as a starting .bonsai.yml.`,
		Example: `  bonsai config
  bonsai config > .bonsai.yml
  bonsai config --env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.env {
				return printEnvVars(cmd)
			}
			return runConfig(cmd, global)
		},
	}

	cmd.Flags().BoolVar(&flags.env, "env", false, "list the supported environment variables")

	return cmd
}

func runConfig(cmd *cobra.Command, global *globalFlags) error {
	result, err := resolveConfig(cmd, global, nil)
	if err != nil {
		return err
	}

	var header strings.Builder
	header.WriteString("# bonsai configuration\n")
	if len(result.LoadedFrom) == 0 {
		logging.NewInteractive().Info("no configuration files found, showing defaults")
		header.WriteString("# source: defaults\n")
	}
	for _, path := range result.LoadedFrom {
		header.WriteString("# source: " + path + "\n")
	}

	content, err := result.Config.ToYAMLWithHeader(header.String())
	if err != nil {
		return err
	}

	if _, err := cmd.OutOrStdout().Write(content); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func printEnvVars(cmd *cobra.Command) error {
	vars := configloader.ListEnvVars()
	names := slices.Sorted(maps.Keys(vars))

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		if _, err := fmt.Fprintf(out, "%-*s  %s\n", width, name, vars[name]); err != nil {
			return fmt.Errorf("write env vars: %w", err)
		}
	}
	return nil
}
