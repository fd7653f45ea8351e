package analysis

import (
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/bonsai/pkg/green"
)

// Reason classifies the first difference between two trees.
type Reason string

const (
	// ReasonVariant means one side is a node and the other a token.
	ReasonVariant Reason = "variant"
	// ReasonKind means the kinds differ.
	ReasonKind Reason = "kind"
	// ReasonText means two tokens of the same kind have different text.
	ReasonText Reason = "text"
	// ReasonChildCount means one node has children the other lacks.
	ReasonChildCount Reason = "child count"
	// ReasonLength means two nodes have equal children but different
	// stored lengths.
	ReasonLength Reason = "length"
)

// Difference locates the first point, in pre-order, where two trees
// differ.
type Difference struct {
	// Path holds child indices from the roots to the differing elements.
	Path []int

	// Reason classifies the difference.
	Reason Reason

	// Left and Right are the differing elements, borrowed from the inputs.
	// For ReasonChildCount the side without the extra child is nil.
	Left, Right green.Element

	// Order is green.CompareElements of the two roots.
	Order int
}

// PathString renders Path as "/" for the roots or "/i/j" below them.
func (d *Difference) PathString() string {
	if len(d.Path) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, i := range d.Path {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}

// Diff returns the first difference between a and b, or nil if they are
// structurally equal. Both are borrowed.
func Diff(a, b green.Element) *Difference {
	d := diff(a, b, nil)
	if d != nil {
		d.Order = green.CompareElements(a, b)
	}
	return d
}

func diff(a, b green.Element, path []int) *Difference {
	if green.EqualElements(a, b) {
		return nil
	}

	found := func(reason Reason, left, right green.Element) *Difference {
		return &Difference{Path: slices.Clone(path), Reason: reason, Left: left, Right: right}
	}

	an, aIsNode := a.(green.Node)
	bn, bIsNode := b.(green.Node)

	switch {
	case aIsNode != bIsNode:
		return found(ReasonVariant, a, b)
	case a.Kind() != b.Kind():
		return found(ReasonKind, a, b)
	case !aIsNode:
		return found(ReasonText, a, b)
	}

	shared := min(an.NumChildren(), bn.NumChildren())
	for i := range shared {
		if d := diff(an.ChildAt(i), bn.ChildAt(i), append(path, i)); d != nil {
			return d
		}
	}

	switch {
	case an.NumChildren() > shared:
		return &Difference{Path: append(slices.Clone(path), shared), Reason: ReasonChildCount, Left: an.ChildAt(shared)}
	case bn.NumChildren() > shared:
		return &Difference{Path: append(slices.Clone(path), shared), Reason: ReasonChildCount, Right: bn.ChildAt(shared)}
	}

	return found(ReasonLength, a, b)
}
