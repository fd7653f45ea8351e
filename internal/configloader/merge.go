package configloader

import (
	"maps"

	"github.com/yaklabco/bonsai/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is non-nil
//   - Kinds: deep merge, with override's values taking precedence
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	if override.Dump.MaxTextWidth != 0 {
		result.Dump.MaxTextWidth = override.Dump.MaxTextWidth
	}
	if override.Dump.MaxDepth != 0 {
		result.Dump.MaxDepth = override.Dump.MaxDepth
	}
	if override.Dump.ShowTrivia != nil {
		result.Dump.ShowTrivia = override.Dump.ShowTrivia
	}

	if override.Stats.ByKind != nil {
		result.Stats.ByKind = override.Stats.ByKind
	}
	if override.Stats.SortBy != "" {
		result.Stats.SortBy = override.Stats.SortBy
	}
	// A config file cannot switch SortAsc back off; only true propagates.
	if override.Stats.SortAsc {
		result.Stats.SortAsc = true
	}

	if override.JSON {
		result.JSON = true
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	result.Kinds = mergeKinds(base.Kinds, override.Kinds)

	return &result
}

// mergeKinds returns a fresh map holding base overlaid with override.
func mergeKinds(base, override map[string]uint16) map[string]uint16 {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]uint16, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
