package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/bonsai/pkg/analysis"
)

// Table formatting constants.
const (
	tablePadding     = 2
	kindColumnCount  = 5 // KIND, NUM, NODES, TOKENS, BYTES
	minNameWidth     = 8
	minNumberWidth   = 6
	heavySeparator   = "="
	lightSeparator   = "-"
	totalRowLabel    = "total"
	kindHeaderName   = "KIND"
	kindHeaderNum    = "NUM"
	kindHeaderNodes  = "NODES"
	kindHeaderTokens = "TOKENS"
	kindHeaderBytes  = "BYTES"
)

// TableFormatter formats the per-kind breakdown of a report.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	name   int
	num    int
	nodes  int
	tokens int
	bytes  int
}

// FormatKindTable formats rows in the order given, followed by a total row.
func (t *TableFormatter) FormatKindTable(rows []analysis.KindAnalysis) string {
	if len(rows) == 0 {
		return ""
	}

	total := analysis.KindAnalysis{Name: totalRowLabel}
	for _, row := range rows {
		total.Nodes += row.Nodes
		total.Tokens += row.Tokens
		total.Bytes += row.Bytes
	}

	widths := t.calculateColumnWidths(rows, total)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths, strconv.Itoa(int(row.Kind))))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")
	builder.WriteString(t.styles.Bold.Render(t.formatRow(total, widths, "")))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []analysis.KindAnalysis, total analysis.KindAnalysis) columnWidths {
	widths := columnWidths{
		name:   max(minNameWidth, len(kindHeaderName)),
		num:    len(kindHeaderNum),
		nodes:  max(minNumberWidth, len(kindHeaderNodes)),
		tokens: max(minNumberWidth, len(kindHeaderTokens)),
		bytes:  max(minNumberWidth, len(kindHeaderBytes)),
	}

	for _, row := range append(rows[:len(rows):len(rows)], total) {
		widths.name = max(widths.name, len(row.Name))
		widths.num = max(widths.num, len(strconv.Itoa(int(row.Kind))))
		widths.nodes = max(widths.nodes, len(strconv.Itoa(row.Nodes)))
		widths.tokens = max(widths.tokens, len(strconv.Itoa(row.Tokens)))
		widths.bytes = max(widths.bytes, len(strconv.Itoa(row.Bytes)))
	}

	// Constrain to terminal width by shrinking the name column.
	if excess := t.calculateTotalWidth(widths) - t.termWidth; excess > 0 {
		widths.name = max(minNameWidth, widths.name-excess)
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.name + widths.num + widths.nodes + widths.tokens + widths.bytes +
		tablePadding*kindColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %*s  %*s  %*s ",
		widths.name, kindHeaderName,
		widths.num, kindHeaderNum,
		widths.nodes, kindHeaderNodes,
		widths.tokens, kindHeaderTokens,
		widths.bytes, kindHeaderBytes,
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row analysis.KindAnalysis, widths columnWidths, num string) string {
	return fmt.Sprintf(" %-*s  %*s  %*d  %*d  %*d ",
		widths.name, Truncate(row.Name, widths.name),
		widths.num, num,
		widths.nodes, row.Nodes,
		widths.tokens, row.Tokens,
		widths.bytes, row.Bytes,
	)
}
