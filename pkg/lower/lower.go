// Package lower turns Markdown into green trees.
//
// The tree is lossless: concatenating the text of its tokens reproduces the
// input byte for byte, and every node's text length is the number of bytes
// it covers. Content from the goldmark AST becomes text tokens, and the
// syntax goldmark strips (markers, indentation, line endings) becomes
// trivia tokens attached to the innermost node that surrounds it.
package lower

import (
	"context"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/bonsai/pkg/green"
)

// Flavor identifies the Markdown flavor understood by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Options configures Markdown.
type Options struct {
	// Flavor is FlavorCommonMark or FlavorGFM. Anything else means
	// CommonMark.
	Flavor string
}

// FlavorOrDefault returns flavor if it is supported, otherwise CommonMark.
func FlavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// Markdown parses src and lowers the result into a green tree rooted at a
// KindDocument node. The caller owns the returned node.
func Markdown(ctx context.Context, src []byte, opts Options) (green.Node, error) {
	if err := ctx.Err(); err != nil {
		return green.Node{}, fmt.Errorf("lower cancelled: %w", err)
	}
	if !utf8.Valid(src) {
		return green.Node{}, fmt.Errorf("lower: %w", green.ErrInvalidText)
	}
	if uint64(len(src)) > math.MaxUint32 {
		return green.Node{}, fmt.Errorf("lower: %d bytes: %w", len(src), green.ErrTextLenOverflow)
	}

	md := newGoldmarkInstance(FlavorOrDefault(opts.Flavor))
	doc := md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return green.Node{}, fmt.Errorf("lower cancelled: %w", err)
	}

	l := &lowerer{
		src:   src,
		spans: make(map[ast.Node]span),
		b:     green.NewBuilder(),
	}
	l.measure(doc)
	l.lower(doc, span{start: 0, end: len(src)})

	root, err := l.b.Finish()
	if err != nil {
		l.b.Reset()
		return green.Node{}, fmt.Errorf("lower: %w", err)
	}
	return root, nil
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}

// span is a half-open byte range of the source. A negative start means the
// goldmark node carries no position.
type span struct {
	start, end int
}

//nolint:gochecknoglobals // Sentinel value.
var noSpan = span{start: -1, end: -1}

func (s span) empty() bool {
	return s.start < 0
}

func (s span) union(o span) span {
	switch {
	case o.empty():
		return s
	case s.empty():
		return o
	}
	return span{start: min(s.start, o.start), end: max(s.end, o.end)}
}

func (s span) add(seg text.Segment) span {
	if seg.Start < 0 || seg.Stop < seg.Start {
		return s
	}
	return s.union(span{start: seg.Start, end: seg.Stop})
}

type lowerer struct {
	src   []byte
	spans map[ast.Node]span
	b     *green.Builder
}

// measure records the span of every node as the union of its own segments
// and its descendants' spans.
func (l *lowerer) measure(n ast.Node) span {
	sp := ownSpan(n)
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		sp = sp.union(l.measure(c))
	}
	l.spans[n] = sp
	return sp
}

// ownSpan extracts the byte range covered by a node's own segments.
func ownSpan(n ast.Node) span {
	sp := noSpan

	switch n := n.(type) {
	case *ast.Text:
		sp = sp.add(n.Segment)
	case *ast.RawHTML:
		for i := range n.Segments.Len() {
			sp = sp.add(n.Segments.At(i))
		}
	case *ast.FencedCodeBlock:
		if n.Info != nil {
			sp = sp.add(n.Info.Segment)
		}
	}

	// Inline nodes panic on Lines.
	if n.Type() != ast.TypeInline {
		lines := n.Lines()
		for i := range lines.Len() {
			sp = sp.add(lines.At(i))
		}
	}

	return sp
}

// lower emits n over sp, which has already been clamped to its parent.
func (l *lowerer) lower(n ast.Node, sp span) {
	if _, ok := n.(*ast.Text); ok {
		l.token(TokenText, sp.start, sp.end)
		return
	}

	l.b.StartNode(kindOf(n))

	if !n.HasChildren() {
		l.token(TokenText, sp.start, sp.end)
		l.b.FinishNode()
		return
	}

	cursor := sp.start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		csp := l.clamp(l.spans[c], cursor, sp.end)
		l.token(TokenTrivia, cursor, csp.start)
		l.lower(c, csp)
		cursor = csp.end
	}
	l.token(TokenTrivia, cursor, sp.end)

	l.b.FinishNode()
}

// clamp fits sp into [lo, hi] and moves both ends to rune boundaries.
// Nodes without a position become empty at lo.
func (l *lowerer) clamp(sp span, lo, hi int) span {
	if sp.empty() {
		return span{start: lo, end: lo}
	}
	start := l.runeStart(min(max(sp.start, lo), hi))
	end := l.runeStart(min(max(sp.end, start), hi))
	return span{start: start, end: end}
}

// runeStart returns the first rune boundary at or after i.
func (l *lowerer) runeStart(i int) int {
	for i < len(l.src) && !utf8.RuneStart(l.src[i]) {
		i++
	}
	return i
}

func (l *lowerer) token(kind green.Kind, start, end int) {
	if end <= start {
		return
	}
	l.b.Token(kind, string(l.src[start:end]))
}

// kindOf maps a goldmark node to a green kind.
func kindOf(n ast.Node) green.Kind {
	switch n := n.(type) {
	// Block-level nodes.
	case *ast.Document:
		return KindDocument
	case *ast.Heading:
		return KindHeading
	case *ast.Paragraph, *ast.TextBlock:
		return KindParagraph
	case *ast.List:
		return KindList
	case *ast.ListItem:
		return KindListItem
	case *ast.Blockquote:
		return KindBlockquote
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return KindCodeBlock
	case *ast.ThematicBreak:
		return KindThematicBreak
	case *ast.HTMLBlock:
		return KindHTMLBlock

	// Inline-level nodes.
	case *ast.Text, *ast.String:
		return KindText
	case *ast.Emphasis:
		if n.Level == 2 {
			return KindStrong
		}
		return KindEmphasis
	case *ast.CodeSpan:
		return KindCodeSpan
	case *ast.Link:
		return KindLink
	case *ast.Image:
		return KindImage
	case *ast.AutoLink:
		return KindAutoLink
	case *ast.RawHTML:
		return KindHTMLInline

	// GFM extension nodes.
	case *east.Strikethrough:
		return KindStrikethrough
	case *east.TaskCheckBox:
		return KindTaskCheckBox
	case *east.Table:
		return KindTable
	case *east.TableHeader:
		return KindTableHeader
	case *east.TableRow:
		return KindTableRow
	case *east.TableCell:
		return KindTableCell

	default:
		return KindRaw
	}
}
