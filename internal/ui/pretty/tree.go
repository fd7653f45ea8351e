package pretty

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/bonsai/pkg/green"
)

// Branch glyphs drawn in front of each child.
const (
	branchMid  = "├─ "
	branchLast = "└─ "
	indentMid  = "│  "
	indentLast = "   "
	ellipsis   = "…"

	// minTextWidth keeps some token text visible on narrow terminals.
	minTextWidth = 8
)

// TreeOptions configures FormatTree.
type TreeOptions struct {
	// KindName names kinds. Nil prints numbers.
	KindName func(green.Kind) string

	// Width is the line width used to truncate token text.
	Width int

	// MaxTextWidth caps the quoted token text. Zero means Width decides.
	MaxTextWidth int

	// MaxDepth stops descending below this depth, the root being depth 1.
	// Zero means unlimited.
	MaxDepth int

	// TriviaKinds lists token kinds rendered with the trivia style.
	TriviaKinds map[green.Kind]bool

	// HideKinds lists token kinds that are not printed.
	HideKinds map[green.Kind]bool
}

// TreeFormatter renders green trees as indented outlines:
//
//	Document [5]
//	├─ trivia "# "
//	├─ Heading [2]
//	│  └─ text "hi"
//	└─ trivia "\n"
type TreeFormatter struct {
	styles *Styles
	opts   TreeOptions
}

// NewTreeFormatter creates a tree formatter.
func NewTreeFormatter(styles *Styles, opts TreeOptions) *TreeFormatter {
	if opts.Width <= 0 {
		opts.Width = defaultTermWidth
	}
	return &TreeFormatter{styles: styles, opts: opts}
}

// FormatTree renders root and everything below it. root is borrowed.
func (f *TreeFormatter) FormatTree(root green.Element) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	f.writeElement(&sb, root, "", "", 1)
	return sb.String()
}

func (f *TreeFormatter) writeElement(sb *strings.Builder, el green.Element, lead, indent string, depth int) {
	sb.WriteString(f.styles.Branch.Render(lead))

	switch el := el.(type) {
	case green.Token:
		f.writeToken(sb, el, utf8.RuneCountInString(lead))
		sb.WriteByte('\n')
	case green.Node:
		sb.WriteString(f.styles.Kind.Render(f.kindName(el.Kind())))
		sb.WriteByte(' ')
		sb.WriteString(f.styles.Length.Render("[" + strconv.FormatUint(uint64(el.TextLen()), 10) + "]"))
		sb.WriteByte('\n')

		if el.NumChildren() == 0 {
			return
		}
		if f.opts.MaxDepth > 0 && depth >= f.opts.MaxDepth {
			sb.WriteString(f.styles.Branch.Render(indent + branchLast))
			sb.WriteString(f.styles.Dim.Render(ellipsis + " " + plural(el.NumChildren(), "child", "children")))
			sb.WriteByte('\n')
			return
		}

		children := make([]green.Element, 0, el.NumChildren())
		for child := range el.Children() {
			if tok, ok := child.(green.Token); ok && f.opts.HideKinds[tok.Kind()] {
				continue
			}
			children = append(children, child)
		}
		for i, child := range children {
			if i == len(children)-1 {
				f.writeElement(sb, child, indent+branchLast, indent+indentLast, depth+1)
			} else {
				f.writeElement(sb, child, indent+branchMid, indent+indentMid, depth+1)
			}
		}
	}
}

func (f *TreeFormatter) writeToken(sb *strings.Builder, tok green.Token, used int) {
	name := f.kindName(tok.Kind())
	style := f.styles.Token
	if f.opts.TriviaKinds[tok.Kind()] {
		style = f.styles.Trivia
	}

	width := f.opts.MaxTextWidth
	if width <= 0 {
		width = max(minTextWidth, f.opts.Width-used-len(name)-1)
	}

	sb.WriteString(style.Render(name))
	sb.WriteByte(' ')
	sb.WriteString(Truncate(strconv.Quote(tok.Text()), width))
}

func (f *TreeFormatter) kindName(kind green.Kind) string {
	if f.opts.KindName != nil {
		return f.opts.KindName(kind)
	}
	return strconv.Itoa(int(kind))
}

// Truncate shortens s to at most width runes, marking the cut with an
// ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return ellipsis
	}
	runes := []rune(s)
	return string(runes[:width-1]) + ellipsis
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
