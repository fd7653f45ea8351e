package analysis

import (
	"hash/maphash"

	"github.com/yaklabco/bonsai/pkg/green"
)

// SortField specifies how to sort the per-kind breakdown.
type SortField string

const (
	// SortByCount sorts by occurrence count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts by kind name.
	SortByAlpha SortField = "alpha"
	// SortByKind sorts by numeric kind.
	SortByKind SortField = "kind"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByKind:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeByKind includes the per-kind breakdown.
	IncludeByKind bool

	// SortBy specifies how to sort ByKind.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// KindName names kinds in the report. Nil means numbers.
	KindName func(green.Kind) string

	// Seed keys the structural hash. The zero Seed means a fresh random
	// seed, so hashes are only comparable within one Analyze call.
	Seed maphash.Seed
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeByKind: true,
		SortBy:        SortByCount,
		SortDesc:      true,
	}
}
