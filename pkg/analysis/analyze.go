// Package analysis computes statistics and structural differences for
// green trees.
package analysis

import (
	"cmp"
	"hash/maphash"
	"slices"
	"strconv"

	"github.com/yaklabco/bonsai/pkg/green"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	totals   Totals
	depth    int
	byKind   map[green.Kind]*KindAnalysis
	records  map[green.Element]struct{}
	distinct *green.Map[struct{}]
}

// Analyze walks root once and returns its report. root is borrowed.
func Analyze(root green.Element, opts Options) *Report {
	actx := &analysisContext{
		byKind:   make(map[green.Kind]*KindAnalysis),
		records:  make(map[green.Element]struct{}),
		distinct: green.NewMap[struct{}](),
	}

	enter := func(el green.Element) error {
		actx.depth++
		actx.totals.MaxDepth = max(actx.totals.MaxDepth, actx.depth)
		actx.visit(el)
		return nil
	}
	leave := func(green.Element) error {
		actx.depth--
		return nil
	}

	//nolint:errcheck,revive // The callbacks never fail.
	green.WalkWithContext(root, enter, leave)

	seed := opts.Seed
	if seed == (maphash.Seed{}) {
		seed = maphash.MakeSeed()
	}

	report := &Report{
		Totals:  actx.totals,
		Hash:    green.HashElement(seed, root),
		Version: ReportVersion,
	}
	report.Totals.Records = len(actx.records)
	report.Totals.Distinct = actx.distinct.Len()
	report.Totals.TextLen = uint32(root.TextLen())

	if opts.IncludeByKind {
		report.ByKind = actx.kinds(opts)
	}

	return report
}

func (actx *analysisContext) visit(el green.Element) {
	// Interface equality compares handles, so this counts allocations.
	actx.records[el] = struct{}{}
	actx.distinct.Set(el, struct{}{})

	ka, ok := actx.byKind[el.Kind()]
	if !ok {
		ka = &KindAnalysis{Kind: uint16(el.Kind())}
		actx.byKind[el.Kind()] = ka
	}

	switch el := el.(type) {
	case green.Node:
		actx.totals.Nodes++
		ka.Nodes++
	case green.Token:
		actx.totals.Tokens++
		actx.totals.TextBytes += len(el.Text())
		ka.Tokens++
		ka.Bytes += len(el.Text())
	}
}

func (actx *analysisContext) kinds(opts Options) []KindAnalysis {
	name := opts.KindName
	if name == nil {
		name = func(k green.Kind) string { return strconv.Itoa(int(k)) }
	}

	kinds := make([]KindAnalysis, 0, len(actx.byKind))
	for kind, ka := range actx.byKind {
		ka.Name = name(kind)
		kinds = append(kinds, *ka)
	}

	slices.SortFunc(kinds, func(a, b KindAnalysis) int {
		var c int
		switch opts.SortBy {
		case SortByAlpha:
			c = cmp.Compare(a.Name, b.Name)
		case SortByCount:
			c = cmp.Compare(a.Count(), b.Count())
		case SortByKind:
			c = cmp.Compare(a.Kind, b.Kind)
		}
		if opts.SortDesc {
			c = -c
		}
		// Ties always break by ascending kind for stable output.
		return cmp.Or(c, cmp.Compare(a.Kind, b.Kind))
	})

	return kinds
}
