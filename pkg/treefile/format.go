package treefile

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Format identifies a tree file encoding.
type Format string

// Supported formats.
const (
	FormatYAML     Format = "yaml"
	FormatCBOR     Format = "cbor"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name as given on the command line or in a
// config file.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// DetectFormat guesses the format of content read from path.
//
// The extension wins when it is recognized. Otherwise binary content is
// taken to be CBOR and go-enry decides between YAML and Markdown, falling
// back to a structural check for tree documents.
func DetectFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".cbor":
		return FormatCBOR
	case ".md", ".markdown":
		return FormatMarkdown
	}

	if enry.IsBinary(content) {
		return FormatCBOR
	}

	switch enry.GetLanguage(filepath.Base(path), content) {
	case "YAML":
		return FormatYAML
	case "Markdown":
		return FormatMarkdown
	}

	if looksLikeTreeYAML(content) {
		return FormatYAML
	}
	return FormatMarkdown
}

// looksLikeTreeYAML reports whether content starts like a YAML tree
// document: a "kind:" key on its first significant line.
func looksLikeTreeYAML(content []byte) bool {
	for line := range bytes.Lines(content) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) || bytes.Equal(line, []byte("---")) {
			continue
		}
		return bytes.HasPrefix(line, []byte("kind:"))
	}
	return false
}
