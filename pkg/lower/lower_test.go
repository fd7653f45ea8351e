package lower_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bonsai/pkg/green"
	"github.com/yaklabco/bonsai/pkg/lower"
)

const sampleDoc = `# Title

Some *emphasis* and **strong** text with ` + "`code`" + `.

- item one
- item [two](https://example.com "t")

> quoted
> lines

` + "```go\nfunc main() {}\n```" + `

    indented code

<div>
html
</div>

---

Trailing paragraph with <span>inline html</span>  
and a hard break.
`

func lowerString(t *testing.T, src string, flavor string) green.Node {
	t.Helper()

	root, err := lower.Markdown(context.Background(), []byte(src), lower.Options{Flavor: flavor})
	require.NoError(t, err)
	t.Cleanup(root.Release)
	return root
}

// requireConsistentLengths checks that every node's length is the number of
// bytes its tokens cover.
func requireConsistentLengths(t *testing.T, root green.Node) {
	t.Helper()

	err := green.Walk(root, func(el green.Element) error {
		assert.Equal(t, len(green.Text(el)), int(el.TextLen()), "length of %v", el)
		return nil
	})
	require.NoError(t, err)
}

func TestMarkdown_Lossless(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"single line", "hello"},
		{"no trailing newline", "# Heading"},
		{"blank lines", "\n\n\npara\n\n\n"},
		{"sample", sampleDoc},
		{"multibyte", "# Grüße\n\n*ünïcødé* → 日本語\n"},
		{"crlf", "para one\r\nstill one\r\n\r\npara two\r\n"},
		{"nested lists", "1. one\n   - a\n   - b\n2. two\n"},
		{"link reference", "[x][ref]\n\n[ref]: https://example.com\n"},
		{"setext", "Title\n=====\n\nbody\n"},
		{"tabs", "-\tone\n\n\tcode\n"},
		{"entities", "a &amp; b &copy; c\n"},
		{"autolink", "see <https://example.com> now\n"},
	}

	for _, flavor := range []string{lower.FlavorCommonMark, lower.FlavorGFM} {
		for _, tc := range tests {
			t.Run(flavor+"/"+tc.name, func(t *testing.T) {
				t.Parallel()

				root := lowerString(t, tc.src, flavor)

				assert.Equal(t, lower.KindDocument, root.Kind())
				assert.Equal(t, tc.src, green.Text(root))
				assert.Equal(t, green.TextLen(len(tc.src)), root.TextLen())
				requireConsistentLengths(t, root)
			})
		}
	}
}

func TestMarkdown_Structure(t *testing.T) {
	t.Parallel()

	root := lowerString(t, sampleDoc, lower.FlavorCommonMark)

	headings := green.FindByKind(root, lower.KindHeading)
	require.Len(t, headings, 1)
	assert.Contains(t, green.Text(headings[0]), "Title")

	for _, kind := range []green.Kind{
		lower.KindParagraph,
		lower.KindEmphasis,
		lower.KindStrong,
		lower.KindCodeSpan,
		lower.KindList,
		lower.KindListItem,
		lower.KindLink,
		lower.KindBlockquote,
		lower.KindCodeBlock,
		lower.KindHTMLBlock,
		lower.KindHTMLInline,
	} {
		assert.NotEmpty(t, green.FindByKind(root, kind), "no %s node", lower.KindName(kind))
	}

	emphasis := green.FindByKind(root, lower.KindEmphasis)
	assert.Equal(t, "emphasis", green.Text(emphasis[0]))

	strong := green.FindByKind(root, lower.KindStrong)
	assert.Equal(t, "strong", green.Text(strong[0]))
}

func TestMarkdown_TokensAreTextOrTrivia(t *testing.T) {
	t.Parallel()

	root := lowerString(t, sampleDoc, lower.FlavorGFM)

	var sawText, sawTrivia bool
	for tok := range green.Tokens(root) {
		switch tok.Kind() {
		case lower.TokenText:
			sawText = true
		case lower.TokenTrivia:
			sawTrivia = true
		default:
			t.Errorf("unexpected token kind %d", tok.Kind())
		}
		assert.NotEmpty(t, tok.Text())
	}
	assert.True(t, sawText)
	assert.True(t, sawTrivia)
}

func TestMarkdown_Flavor(t *testing.T) {
	t.Parallel()

	const src = "~~gone~~\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n- [x] done\n"

	commonmark := lowerString(t, src, lower.FlavorCommonMark)
	assert.Empty(t, green.FindByKind(commonmark, lower.KindStrikethrough))
	assert.Empty(t, green.FindByKind(commonmark, lower.KindTable))

	gfm := lowerString(t, src, lower.FlavorGFM)
	strike := green.FindByKind(gfm, lower.KindStrikethrough)
	require.Len(t, strike, 1)
	assert.Equal(t, "gone", green.Text(strike[0]))
	assert.Len(t, green.FindByKind(gfm, lower.KindTable), 1)
	assert.Len(t, green.FindByKind(gfm, lower.KindTableCell), 4)

	assert.Equal(t, src, green.Text(gfm))
	requireConsistentLengths(t, gfm)
}

func TestMarkdown_Deterministic(t *testing.T) {
	t.Parallel()

	a := lowerString(t, sampleDoc, lower.FlavorGFM)
	b := lowerString(t, sampleDoc, lower.FlavorGFM)

	assert.True(t, a.Equal(b))
}

func TestMarkdown_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := lower.Markdown(context.Background(), []byte("bad \xff byte"), lower.Options{})
	assert.ErrorIs(t, err, green.ErrInvalidText)
}

func TestMarkdown_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lower.Markdown(ctx, []byte("# x"), lower.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlavorOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lower.FlavorGFM, lower.FlavorOrDefault("gfm"))
	assert.Equal(t, lower.FlavorCommonMark, lower.FlavorOrDefault("commonmark"))
	assert.Equal(t, lower.FlavorCommonMark, lower.FlavorOrDefault("bogus"))
	assert.Equal(t, lower.FlavorCommonMark, lower.FlavorOrDefault(""))
}
