package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bonsai/pkg/config"
)

// projectDir returns a temp directory marked as a VCS root so the upward
// search never leaves it.
func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(projectDir(t)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Equal(t, config.TreeFormatYAML, result.Config.Format)
	assert.Equal(t, config.ColorAuto, result.Config.Color)
	assert.True(t, result.Config.Dump.TriviaShown())
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".bonsai.yml"), `
flavor: gfm
kinds:
  frontmatter: 200
dump:
  show_trivia: false
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, uint16(200), result.Config.Kinds["frontmatter"])
	assert.False(t, result.Config.Dump.TriviaShown())
	assert.Equal(t, config.SortByCount, result.Config.Stats.SortBy, "defaults survive a partial file")
	assert.Equal(t, []string{filepath.Join(dir, ".bonsai.yml")}, result.LoadedFrom)
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, "bonsai.yaml"), "format: cbor\n")
	sub := filepath.Join(dir, "docs", "guide")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)
	assert.Equal(t, config.TreeFormatCBOR, result.Config.Format)
	assert.Equal(t, filepath.Join(dir, "bonsai.yaml"), result.Paths.Project)
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".bonsai.yml"), "flavor: gfm\nformat: cbor\n")
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, explicit, "flavor: commonmark\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Equal(t, config.TreeFormatCBOR, result.Config.Format)
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.LoadedFrom[1])
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".bonsai.yml"), "color: always\nkinds:\n  a: 1\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Color: config.ColorNever,
		Kinds: map[string]uint16{"b": 2},
		JSON:  true,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.ColorNever, result.Config.Color)
	assert.Equal(t, map[string]uint16{"a": 1, "b": 2}, result.Config.Kinds)
	assert.True(t, result.Config.JSON)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad flavor", "flavor: mdx\n", "invalid flavor"},
		{"bad format", "format: json\n", "invalid format"},
		{"negative depth", "dump:\n  max_depth: -1\n", "max_depth"},
		{"bad sort", "stats:\n  sort_by: size\n", "invalid sort field"},
		{"kind out of range", "kinds:\n  big: 70000\n", "parse yaml"},
		{"malformed yaml", "flavor: [\n", "parse yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := projectDir(t)
			path := filepath.Join(dir, ".bonsai.yml")
			writeConfig(t, path, tc.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoad_KindWarnings(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".bonsai.yml"), "kinds:\n  Heading: 900\n  front: 7\n  fm: 7\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `kind "Heading" is`)
	assert.Contains(t, result.Warnings[1], `"fm" is printed`)
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(projectDir(t)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, filepath.Join(outer, ".bonsai.yml"), "flavor: gfm\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindProjectConfig_PreferenceOrder(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, "bonsai.yml"), "")
	writeConfig(t, filepath.Join(dir, ".bonsai.yaml"), "")

	path, err := FindProjectConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".bonsai.yaml"), path)
}

func TestLoad_UserConfig(t *testing.T) {
	// Not parallel: sets XDG_CONFIG_HOME.
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeConfig(t, filepath.Join(xdg, "bonsai", "config.yaml"), "stats:\n  sort_by: alpha\n")

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".bonsai.yml"), "stats:\n  sort_asc: true\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreEnv:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, config.SortByAlpha, result.Config.Stats.SortBy)
	assert.True(t, result.Config.Stats.SortAsc)
	assert.Equal(t, filepath.Join(xdg, "bonsai", "config.yaml"), result.LoadedFrom[0])
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	// Not parallel: sets environment variables.
	t.Setenv("BONSAI_FLAVOR", "gfm")
	t.Setenv("BONSAI_DUMP_MAX_DEPTH", "3")
	t.Setenv("BONSAI_STATS_BY_KIND", "false")
	t.Setenv("BONSAI_KINDS", "fm=300, note = 301")

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".bonsai.yml"), "flavor: commonmark\ndump:\n  max_depth: 9\n")

	opts := isolated(dir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, 3, result.Config.Dump.MaxDepth)
	assert.False(t, result.Config.Stats.KindsShown())
	assert.Equal(t, map[string]uint16{"fm": 300, "note": 301}, result.Config.Kinds)
}

func TestLoadFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"bool", "BONSAI_DUMP_SHOW_TRIVIA", "maybe", "invalid boolean"},
		{"int", "BONSAI_DUMP_MAX_TEXT_WIDTH", "wide", "invalid integer"},
		{"kinds", "BONSAI_KINDS", "fm", "invalid kinds"},
		{"kind range", "BONSAI_KINDS", "fm=70000", "invalid kinds"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			err := LoadFromEnv(config.NewConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "BONSAI_STATS_SORT_BY", GetEnvVarName("stats.sort_by"))
	assert.Empty(t, GetEnvVarName("nope"))

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars["BONSAI_COLOR"], "auto")
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	show := false
	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Flavor: config.FlavorGFM, Kinds: map[string]uint16{"a": 1}},
		&config.Config{Dump: config.DumpConfig{ShowTrivia: &show}, Kinds: map[string]uint16{"a": 2}},
	)

	assert.Equal(t, config.FlavorGFM, merged.Flavor)
	assert.Equal(t, config.TreeFormatYAML, merged.Format)
	assert.False(t, merged.Dump.TriviaShown())
	assert.Equal(t, uint16(2), merged.Kinds["a"])
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.True(t, Validate(nil).Valid())
	assert.True(t, Validate(config.NewConfig()).Valid())

	cfg := config.NewConfig()
	cfg.Color = "sometimes"
	cfg.Kinds["two words"] = 5
	result := ValidateWithFile(cfg, "x.yml")

	require.Len(t, result.Errors, 2)
	assert.False(t, result.HasWarnings())
	assert.Equal(t, "x.yml", result.Errors[0].FilePath)
	messages := result.AllMessages()
	assert.Contains(t, messages[0], "error: x.yml: color")
}
