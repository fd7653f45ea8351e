package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/bonsai/pkg/config"
)

const envVarPrefix = "BONSAI_"

// envMapping binds one BONSAI_* variable to the config field it sets.
type envMapping struct {
	field string
	help  string
	apply func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR": {"flavor", "Markdown flavor: commonmark or gfm",
		func(c *config.Config, v string) error { c.Flavor = config.Flavor(v); return nil }},
	"FORMAT": {"format", "Tree file format written by convert: yaml or cbor",
		func(c *config.Config, v string) error { c.Format = config.TreeFormat(v); return nil }},
	"COLOR": {"color", "Color output: auto, always or never",
		func(c *config.Config, v string) error { c.Color = config.ColorMode(v); return nil }},
	"KINDS": {"kinds", "Comma-separated name=number kind names", applyKinds},
	"DUMP_MAX_TEXT_WIDTH": {"dump.max_text_width", "Truncate token text in dump (0 = terminal width)",
		intSetter(func(c *config.Config) *int { return &c.Dump.MaxTextWidth })},
	"DUMP_MAX_DEPTH": {"dump.max_depth", "Maximum depth printed by dump (0 = unlimited)",
		intSetter(func(c *config.Config) *int { return &c.Dump.MaxDepth })},
	"DUMP_SHOW_TRIVIA": {"dump.show_trivia", "Print trivia tokens in dump: true or false",
		boolSetter(func(c *config.Config, b bool) { c.Dump.ShowTrivia = &b })},
	"STATS_BY_KIND": {"stats.by_kind", "Print the per-kind table in stats: true or false",
		boolSetter(func(c *config.Config, b bool) { c.Stats.ByKind = &b })},
	"STATS_SORT_BY": {"stats.sort_by", "Per-kind table order: count, alpha or kind",
		func(c *config.Config, v string) error { c.Stats.SortBy = v; return nil }},
	"STATS_SORT_ASC": {"stats.sort_asc", "Sort the per-kind table ascending: true or false",
		boolSetter(func(c *config.Config, b bool) { c.Stats.SortAsc = b })},
}

func intSetter(field func(*config.Config) *int) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		set(c, b)
		return nil
	}
}

func applyKinds(c *config.Config, v string) error {
	kinds, err := parseKindsValue(v)
	if err != nil {
		return fmt.Errorf("invalid kinds: %w", err)
	}
	if c.Kinds == nil {
		c.Kinds = make(map[string]uint16, len(kinds))
	}
	maps.Copy(c.Kinds, kinds)
	return nil
}

// LoadFromEnv overlays every set BONSAI_* variable onto cfg. Variables are
// applied in name order so the first reported error is stable.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, suffix := range slices.Sorted(maps.Keys(envMappings)) {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := envMappings[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// parseKindsValue parses "name=number,name=number".
func parseKindsValue(value string) (map[string]uint16, error) {
	kinds := make(map[string]uint16)
	for part := range strings.SplitSeq(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, num, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%q is not name=number", part)
		}
		kind, err := strconv.ParseUint(strings.TrimSpace(num), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("kind %q: %w", name, err)
		}
		kinds[name] = uint16(kind)
	}
	return kinds, nil
}

// GetEnvVarName returns the variable that sets a config field, or "".
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars maps each supported variable to its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}
