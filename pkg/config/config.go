// Package config defines core configuration types for bonsai.
// These types are pure data structures with no dependency on how they are
// discovered or loaded.
package config

// Flavor specifies the Markdown flavor used when lowering Markdown input.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// TreeFormat is the encoding written by convert.
type TreeFormat string

const (
	TreeFormatYAML TreeFormat = "yaml"
	TreeFormatCBOR TreeFormat = "cbor"
)

// IsValid returns true if the tree format can be written.
func (f TreeFormat) IsValid() bool {
	switch f {
	case TreeFormatYAML, TreeFormatCBOR:
		return true
	default:
		return false
	}
}

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// SortBy values accepted by StatsConfig.SortBy.
const (
	SortByCount = "count"
	SortByAlpha = "alpha"
	SortByKind  = "kind"
)

// DumpConfig controls the tree printed by the dump command.
type DumpConfig struct {
	// MaxTextWidth truncates token text. Zero means the terminal width.
	MaxTextWidth int `mapstructure:"max_text_width" yaml:"max_text_width"`

	// MaxDepth stops descending below this depth. Zero means unlimited.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	// ShowTrivia includes trivia tokens. Nil means true.
	ShowTrivia *bool `mapstructure:"show_trivia" yaml:"show_trivia,omitempty"`
}

// TriviaShown reports whether dump prints trivia tokens.
func (d DumpConfig) TriviaShown() bool {
	return d.ShowTrivia == nil || *d.ShowTrivia
}

// StatsConfig controls the report printed by the stats command.
type StatsConfig struct {
	// ByKind includes the per-kind table. Nil means true.
	ByKind *bool `mapstructure:"by_kind" yaml:"by_kind,omitempty"`

	// SortBy orders the per-kind table: "count", "alpha" or "kind".
	SortBy string `mapstructure:"sort_by" yaml:"sort_by"`

	// SortAsc sorts ascending instead of the default descending order.
	SortAsc bool `mapstructure:"sort_asc" yaml:"sort_asc"`
}

// KindsShown reports whether stats prints the per-kind table.
func (s StatsConfig) KindsShown() bool {
	return s.ByKind == nil || *s.ByKind
}

// Config is the root configuration structure for bonsai.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Format is the tree file format written by convert when the output
	// path does not say otherwise.
	Format TreeFormat `mapstructure:"format" yaml:"format"`

	// Kinds names numeric kinds in tree files, on top of the names the
	// Markdown lowering defines.
	Kinds map[string]uint16 `mapstructure:"kinds" yaml:"kinds"`

	// Color controls styled output.
	Color ColorMode `mapstructure:"color" yaml:"color"`

	Dump  DumpConfig  `mapstructure:"dump" yaml:"dump"`
	Stats StatsConfig `mapstructure:"stats" yaml:"stats"`

	// CLI-level options (not persisted to config files).

	// JSON prints machine-readable output where a command supports it.
	JSON bool `mapstructure:"-" yaml:"-"`

	// Output is the destination path for commands that write files.
	Output string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorCommonMark,
		Format: TreeFormatYAML,
		Kinds:  make(map[string]uint16),
		Color:  ColorAuto,
		Stats: StatsConfig{
			SortBy: SortByCount,
		},
	}
}
