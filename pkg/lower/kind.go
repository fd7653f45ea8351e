package lower

import (
	"strconv"

	"github.com/yaklabco/bonsai/pkg/green"
)

// Node kinds produced by Markdown. They follow the block and inline
// structure of the goldmark AST.
const (
	// Block-level nodes.
	KindDocument green.Kind = iota
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindBlockquote
	KindCodeBlock
	KindThematicBreak
	KindHTMLBlock

	// Inline-level nodes.
	KindText
	KindEmphasis
	KindStrong
	KindCodeSpan
	KindLink
	KindImage
	KindAutoLink
	KindHTMLInline

	// GFM extension nodes.
	KindStrikethrough
	KindTaskCheckBox
	KindTable
	KindTableHeader
	KindTableRow
	KindTableCell

	// Fallback for node types without a dedicated kind.
	KindRaw
)

// Token kinds. Text tokens carry content, trivia tokens carry Markdown
// syntax and whitespace between content.
const (
	TokenText green.Kind = 100 + iota
	TokenTrivia
)

//nolint:gochecknoglobals // Static lookup table.
var kindNames = map[green.Kind]string{
	KindDocument:      "Document",
	KindParagraph:     "Paragraph",
	KindHeading:       "Heading",
	KindList:          "List",
	KindListItem:      "ListItem",
	KindBlockquote:    "Blockquote",
	KindCodeBlock:     "CodeBlock",
	KindThematicBreak: "ThematicBreak",
	KindHTMLBlock:     "HTMLBlock",
	KindText:          "Text",
	KindEmphasis:      "Emphasis",
	KindStrong:        "Strong",
	KindCodeSpan:      "CodeSpan",
	KindLink:          "Link",
	KindImage:         "Image",
	KindAutoLink:      "AutoLink",
	KindHTMLInline:    "HTMLInline",
	KindStrikethrough: "Strikethrough",
	KindTaskCheckBox:  "TaskCheckBox",
	KindTable:         "Table",
	KindTableHeader:   "TableHeader",
	KindTableRow:      "TableRow",
	KindTableCell:     "TableCell",
	KindRaw:           "Raw",
	TokenText:         "text",
	TokenTrivia:       "trivia",
}

// KindName returns the Markdown name of kind, or its number if it has none.
func KindName(kind green.Kind) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return strconv.Itoa(int(kind))
}

// KindNames returns a fresh map from Markdown kind names to kinds.
func KindNames() map[string]green.Kind {
	names := make(map[string]green.Kind, len(kindNames))
	for kind, name := range kindNames {
		names[name] = kind
	}
	return names
}
