// Package treefile reads and writes green trees as files.
//
// A tree file is a nested document of nodes and tokens, stored as YAML or
// CBOR. Markdown files are accepted as input and lowered into a tree.
// Tokens are the entries that carry text:
//
//	kind: Document
//	len: 5
//	children:
//	  - {kind: trivia, text: "# "}
//	  - kind: Heading
//	    children:
//	      - {kind: text, text: "hi"}
//	  - {kind: trivia, text: "\n"}
//
// Kinds are written as names when Options.Kinds knows them and as numbers
// otherwise. A node's len may be omitted, in which case it is the sum of
// its children's lengths.
package treefile

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/yaklabco/bonsai/pkg/green"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrUnknownFormat indicates a format name that is not supported.
	ErrUnknownFormat = errors.New("unknown tree file format")

	// ErrInvalidDoc indicates a structurally invalid tree document.
	ErrInvalidDoc = errors.New("invalid tree document")
)

// Doc is the document form of one element.
type Doc struct {
	// Kind is a kind name or number.
	Kind any `yaml:"kind" cbor:"1,keyasint"`

	// Len is the text length of a node. Tokens derive it from Text.
	Len *uint32 `yaml:"len,omitempty" cbor:"2,keyasint,omitempty"`

	// Text is set for tokens only.
	Text *string `yaml:"text,omitempty" cbor:"3,keyasint,omitempty"`

	// Children of a node, in order.
	Children []*Doc `yaml:"children,omitempty" cbor:"4,keyasint,omitempty"`
}

// Options configures conversion between documents and trees.
type Options struct {
	// Kinds maps kind names to kinds. Names are used when writing and
	// accepted when reading.
	Kinds map[string]green.Kind

	// Flavor is the Markdown flavor used when lowering Markdown input.
	Flavor string
}

func (o Options) kindNames() map[green.Kind]string {
	names := make(map[green.Kind]string, len(o.Kinds))
	for name, kind := range o.Kinds {
		// Ties go to the shortest, then lexically first name.
		if prev, ok := names[kind]; !ok || len(name) < len(prev) || (len(name) == len(prev) && name < prev) {
			names[kind] = name
		}
	}
	return names
}

// KindNamer returns a function naming kinds the way documents are written:
// the configured name, or the number when there is none.
func (o Options) KindNamer() func(green.Kind) string {
	names := o.kindNames()
	return func(kind green.Kind) string {
		if name, ok := names[kind]; ok {
			return name
		}
		return strconv.Itoa(int(kind))
	}
}

// FromElement converts a tree into its document form. el is borrowed.
func FromElement(el green.Element, opts Options) *Doc {
	return fromElement(el, opts.kindNames())
}

func fromElement(el green.Element, names map[green.Kind]string) *Doc {
	doc := &Doc{Kind: kindValue(el.Kind(), names)}

	switch el := el.(type) {
	case green.Token:
		text := el.Text()
		doc.Text = &text
	case green.Node:
		textLen := uint32(el.TextLen())
		doc.Len = &textLen
		doc.Children = make([]*Doc, 0, el.NumChildren())
		for child := range el.Children() {
			doc.Children = append(doc.Children, fromElement(child, names))
		}
	}

	return doc
}

func kindValue(kind green.Kind, names map[green.Kind]string) any {
	if name, ok := names[kind]; ok {
		return name
	}
	return uint64(kind)
}

// ToElement builds the tree described by doc. The caller owns the result.
// Invalid documents are reported as errors wrapping ErrInvalidDoc or one of
// the green contract errors, and nothing is leaked.
func ToElement(doc *Doc, opts Options) (green.Element, error) {
	return toElement(doc, opts, "$")
}

// ToNode is ToElement for documents whose root must be a node.
func ToNode(doc *Doc, opts Options) (green.Node, error) {
	el, err := ToElement(doc, opts)
	if err != nil {
		return green.Node{}, err
	}
	node, ok := el.(green.Node)
	if !ok {
		green.ReleaseElement(el)
		return green.Node{}, fmt.Errorf("%w: root is a token", ErrInvalidDoc)
	}
	return node, nil
}

//nolint:ireturn // Element is the sum type of the tree.
func toElement(doc *Doc, opts Options, path string) (green.Element, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: %s: empty entry", ErrInvalidDoc, path)
	}

	kind, err := parseKind(doc.Kind, opts.Kinds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if doc.Text != nil {
		return toToken(doc, kind, path)
	}

	children := make([]green.Element, 0, len(doc.Children))
	release := func() {
		for _, child := range children {
			green.ReleaseElement(child)
		}
	}

	for i, childDoc := range doc.Children {
		child, err := toElement(childDoc, opts, path+".children["+strconv.Itoa(i)+"]")
		if err != nil {
			release()
			return nil, err
		}
		children = append(children, child)
	}

	var textLen green.TextLen
	if doc.Len != nil {
		textLen = green.TextLen(*doc.Len)
	} else if textLen, err = green.SumTextLen(children...); err != nil {
		release()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return green.NewNode(kind, textLen, children...), nil
}

//nolint:ireturn // Element is the sum type of the tree.
func toToken(doc *Doc, kind green.Kind, path string) (green.Element, error) {
	text := *doc.Text

	switch {
	case len(doc.Children) != 0:
		return nil, fmt.Errorf("%w: %s: token with children", ErrInvalidDoc, path)
	case !utf8.ValidString(text):
		return nil, fmt.Errorf("%s: %w", path, green.ErrInvalidText)
	case uint64(len(text)) > math.MaxUint32:
		return nil, fmt.Errorf("%s: %w", path, green.ErrTextLenOverflow)
	case doc.Len != nil && int(*doc.Len) != len(text):
		return nil, fmt.Errorf("%w: %s: len %d, text has %d bytes", ErrInvalidDoc, path, *doc.Len, len(text))
	}

	return green.NewToken(kind, text), nil
}

// parseKind accepts a kind name, a number, or a number written as a string.
func parseKind(v any, names map[string]green.Kind) (green.Kind, error) {
	var n uint64
	switch v := v.(type) {
	case string:
		if kind, ok := names[v]; ok {
			return kind, nil
		}
		parsed, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidDoc, v)
		}
		return green.Kind(parsed), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%w: negative kind %d", ErrInvalidDoc, v)
		}
		n = uint64(v)
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("%w: negative kind %d", ErrInvalidDoc, v)
		}
		n = uint64(v)
	case uint64:
		n = v
	case nil:
		return 0, fmt.Errorf("%w: missing kind", ErrInvalidDoc)
	default:
		return 0, fmt.Errorf("%w: kind of type %T", ErrInvalidDoc, v)
	}

	if n > math.MaxUint16 {
		return 0, fmt.Errorf("%w: kind %d out of range", ErrInvalidDoc, n)
	}
	return green.Kind(n), nil
}
