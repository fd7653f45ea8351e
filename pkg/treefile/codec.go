package treefile

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/bonsai/pkg/green"
	"github.com/yaklabco/bonsai/pkg/lower"
)

// maxNesting bounds CBOR nesting. Each tree level uses two levels, a map
// and the children array.
const maxNesting = 65535

//nolint:gochecknoglobals // Immutable codec modes, safe for concurrent use.
var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

//nolint:gochecknoinits // Codec modes are built once from static options.
func init() {
	var err error

	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("treefile: cbor encoder: %v", err))
	}

	cborDec, err = cbor.DecOptions{
		MaxNestedLevels: maxNesting,
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("treefile: cbor decoder: %v", err))
	}
}

// Decode reads a tree in the given format. The caller owns the result.
func Decode(ctx context.Context, content []byte, format Format, opts Options) (green.Node, error) {
	if err := ctx.Err(); err != nil {
		return green.Node{}, fmt.Errorf("decode: %w", err)
	}

	if format == FormatMarkdown {
		root, err := lower.Markdown(ctx, content, lower.Options{Flavor: opts.Flavor})
		if err != nil {
			return green.Node{}, fmt.Errorf("decode markdown: %w", err)
		}
		return root, nil
	}

	doc, err := UnmarshalDoc(content, format)
	if err != nil {
		return green.Node{}, err
	}

	root, err := ToNode(doc, opts)
	if err != nil {
		return green.Node{}, fmt.Errorf("decode %s: %w", format, err)
	}
	return root, nil
}

// UnmarshalDoc parses a YAML or CBOR document.
func UnmarshalDoc(content []byte, format Format) (*Doc, error) {
	var doc Doc

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidDoc, err)
		}
	case FormatCBOR:
		if err := cborDec.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("%w: decode cbor: %w", ErrInvalidDoc, err)
		}
	case FormatMarkdown:
		return nil, fmt.Errorf("%w: markdown is not a document format", ErrUnknownFormat)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &doc, nil
}

// Encode writes root in the given format. Markdown output is the tree's
// text, which for a lowered document is the original source.
func Encode(w io.Writer, root green.Node, format Format, opts Options) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(FromElement(root, opts)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatCBOR:
		if err := cborEnc.NewEncoder(w).Encode(FromElement(root, opts)); err != nil {
			return fmt.Errorf("encode cbor: %w", err)
		}
	case FormatMarkdown:
		if err := green.WriteText(w, root); err != nil {
			return fmt.Errorf("encode markdown: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return nil
}

// Marshal is Encode into a byte slice.
func Marshal(root green.Node, format Format, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, root, format, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
