package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/bonsai/pkg/analysis"
	"github.com/yaklabco/bonsai/pkg/green"
)

const summaryDividerWidth = 40

// Allocations holds record counters shown under a stats summary.
type Allocations struct {
	Allocated int64
	Freed     int64
	Live      int64
}

// FormatSummary formats the totals of a report as a summary block.
func (s *Styles) FormatSummary(title string, report *analysis.Report) string {
	var builder strings.Builder

	builder.WriteString(s.SummaryTitle.Render(title))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	totals := report.Totals
	s.writeLine(&builder, "Nodes:", strconv.Itoa(totals.Nodes))
	s.writeLine(&builder, "Tokens:", strconv.Itoa(totals.Tokens))
	s.writeLine(&builder, "Records:", strconv.Itoa(totals.Records))
	if shared := totals.Shared(); shared > 0 {
		builder.WriteString("    Shared:          " + s.Success.Render(strconv.Itoa(shared)) + "\n")
	}
	s.writeLine(&builder, "Distinct subtrees:", strconv.Itoa(totals.Distinct))
	s.writeLine(&builder, "Max depth:", strconv.Itoa(totals.MaxDepth))
	s.writeLine(&builder, "Text length:", strconv.FormatUint(uint64(totals.TextLen), 10))
	if totals.TextBytes != int(totals.TextLen) {
		builder.WriteString("    Token bytes:     " + s.Failure.Render(strconv.Itoa(totals.TextBytes)) + "\n")
	}
	s.writeLine(&builder, "Hash:", fmt.Sprintf("%016x", report.Hash))

	return builder.String()
}

// FormatAllocations formats record counters.
func (s *Styles) FormatAllocations(alloc Allocations) string {
	var builder strings.Builder
	builder.WriteString(s.SummaryTitle.Render("Records"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")
	s.writeLine(&builder, "Allocated:", strconv.FormatInt(alloc.Allocated, 10))
	s.writeLine(&builder, "Freed:", strconv.FormatInt(alloc.Freed, 10))
	s.writeLine(&builder, "Live:", strconv.FormatInt(alloc.Live, 10))
	return builder.String()
}

// FormatDifference describes the outcome of comparing two trees. A nil
// difference means the trees are structurally equal.
func (s *Styles) FormatDifference(left, right string, d *analysis.Difference, kindName func(green.Kind) string) string {
	if d == nil {
		return s.Success.Render("Trees are equal") + s.Dim.Render(fmt.Sprintf(" (%s, %s)", left, right)) + "\n"
	}

	order := "<"
	if d.Order > 0 {
		order = ">"
	}

	var builder strings.Builder
	builder.WriteString(s.Failure.Render("Trees differ"))
	builder.WriteString(s.Dim.Render(fmt.Sprintf(" (%s %s %s)", left, order, right)))
	builder.WriteString("\n")
	builder.WriteString("  at " + s.DiffPath.Render(d.PathString()) + ": " + string(d.Reason) + "\n")
	builder.WriteString("  - " + s.DiffLeft.Render(describe(d.Left, kindName)) + "\n")
	builder.WriteString("  + " + s.DiffRight.Render(describe(d.Right, kindName)) + "\n")
	return builder.String()
}

// describe renders one side of a difference on a single line.
func describe(el green.Element, kindName func(green.Kind) string) string {
	if el == nil {
		return "(missing)"
	}
	name := strconv.Itoa(int(el.Kind()))
	if kindName != nil {
		name = kindName(el.Kind())
	}
	switch el := el.(type) {
	case green.Token:
		return name + " " + Truncate(strconv.Quote(el.Text()), summaryDividerWidth)
	case green.Node:
		return fmt.Sprintf("%s [%d] %s", name, el.TextLen(), plural(el.NumChildren(), "child", "children"))
	default:
		return name
	}
}

func (s *Styles) writeLine(builder *strings.Builder, label, value string) {
	fmt.Fprintf(builder, "  %-19s%s\n", label, s.SummaryValue.Render(value))
}
