// Package configloader resolves the bonsai configuration for one invocation.
//
// Files are discovered at the system, user and project levels, merged in
// that order with an explicit --config file, then overlaid with BONSAI_*
// environment variables and finally with command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/bonsai/pkg/config"
)

// LoadOptions selects which layers Load reads.
type LoadOptions struct {
	// WorkingDir anchors the project search. Empty means os.Getwd.
	WorkingDir string

	// ExplicitPath is the --config file. It is never skipped.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds values set by flags and wins over every other layer.
	CLIConfig *config.Config
}

// LoadResult is a resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are validation warnings for the merged configuration.
	Warnings []string
}

// layer is one configuration file in the merge order.
type layer struct {
	name string
	path string
	skip bool
}

func fileLayers(paths *ConfigPaths, opts LoadOptions) []layer {
	return []layer{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}
}

// Load merges defaults, configuration files, environment and flags, from
// lowest to highest precedence, and validates the result.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, l := range fileLayers(paths, opts) {
		if l.skip || l.path == "" {
			continue
		}
		fileCfg, err := readConfigFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", l.name, err)
		}
		// Errors point at the file that introduced them.
		if v := ValidateWithFile(fileCfg, l.path); !v.Valid() {
			return nil, &v.Errors[0]
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, l.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	v := Validate(cfg)
	if !v.Valid() {
		return nil, &v.Errors[0]
	}
	for _, w := range v.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

func readConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
