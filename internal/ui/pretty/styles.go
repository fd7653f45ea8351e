// Package pretty renders trees, reports and diffs for the terminal.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 100

// ANSI 256 palette indexes.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorBlue   = "12"
	colorCyan   = "14"
	colorSilver = "7"
	colorGray   = "8"
)

// Styles holds one lipgloss style per visual role.
type Styles struct {
	Kind   lipgloss.Style
	Length lipgloss.Style
	Token  lipgloss.Style
	Trivia lipgloss.Style
	Branch lipgloss.Style

	DiffPath  lipgloss.Style
	DiffLeft  lipgloss.Style
	DiffRight lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the output styles. With colorEnabled false every style
// renders its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	base := lipgloss.NewStyle()
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return base
		}
		return base.Foreground(lipgloss.Color(color))
	}
	bold := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return s
		}
		return s.Bold(true)
	}
	italic := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return s
		}
		return s.Italic(true)
	}

	dim := fg(colorGray)
	return &Styles{
		Kind:   bold(fg(colorBlue)),
		Length: dim,
		Token:  fg(colorGreen),
		Trivia: italic(dim),
		Branch: dim,

		DiffPath:  bold(fg(colorCyan)),
		DiffLeft:  fg(colorRed),
		DiffRight: fg(colorGreen),

		SummaryTitle: bold(base),
		SummaryValue: base,
		Success:      bold(fg(colorGreen)),
		Failure:      bold(fg(colorRed)),

		TableHeader:    bold(fg(colorSilver)),
		TableSeparator: dim,

		Dim:  dim,
		Bold: bold(base),
	}
}

// IsColorEnabled reports whether output to writer should be colored. mode
// is "always", "never" or "auto"; any other value is treated as "auto",
// which colors only terminals and honors NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalWidth returns the column count of the terminal behind writer, or
// a default width when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}
