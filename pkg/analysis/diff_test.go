package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bonsai/pkg/analysis"
	"github.com/yaklabco/bonsai/pkg/green"
)

func statement(ident string, children ...green.Element) green.Node {
	all := append([]green.Element{
		green.NewToken(2, "let"),
		green.NewNode(3, green.TextLen(len(ident)), green.NewToken(4, ident)),
	}, children...)
	total, err := green.SumTextLen(all...)
	if err != nil {
		panic(err)
	}
	return green.NewNode(1, total, all...)
}

func TestDiff_Equal(t *testing.T) {
	t.Parallel()

	assert.Nil(t, analysis.Diff(statement("x"), statement("x")))

	shared := statement("x")
	assert.Nil(t, analysis.Diff(shared, shared))
}

func TestDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		a, b       green.Element
		wantPath   string
		wantReason analysis.Reason
		wantOrder  int
	}{
		{
			name:       "token text",
			a:          statement("x"),
			b:          statement("y"),
			wantPath:   "/1/0",
			wantReason: analysis.ReasonText,
			wantOrder:  -1,
		},
		{
			name:       "root kind",
			a:          green.NewNode(5, 0),
			b:          green.NewNode(1, 0),
			wantPath:   "/",
			wantReason: analysis.ReasonKind,
			wantOrder:  1,
		},
		{
			name:       "variant",
			a:          statement("x", green.NewNode(7, 0)),
			b:          statement("x", green.NewToken(7, "")),
			wantPath:   "/2",
			wantReason: analysis.ReasonVariant,
			wantOrder:  -1,
		},
		{
			name:       "extra child on the left",
			a:          statement("x", green.NewToken(9, ";")),
			b:          statement("x"),
			wantPath:   "/2",
			wantReason: analysis.ReasonChildCount,
			wantOrder:  1,
		},
		{
			name:       "length only",
			a:          green.NewNode(1, 3, green.NewToken(2, "a")),
			b:          green.NewNode(1, 1, green.NewToken(2, "a")),
			wantPath:   "/",
			wantReason: analysis.ReasonLength,
			wantOrder:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := analysis.Diff(tc.a, tc.b)
			require.NotNil(t, d)

			assert.Equal(t, tc.wantPath, d.PathString())
			assert.Equal(t, tc.wantReason, d.Reason)
			assert.Equal(t, tc.wantOrder, d.Order)

			reverse := analysis.Diff(tc.b, tc.a)
			require.NotNil(t, reverse)
			assert.Equal(t, d.Path, reverse.Path)
			assert.Equal(t, -tc.wantOrder, reverse.Order)
		})
	}
}

func TestDiff_ChildCountSides(t *testing.T) {
	t.Parallel()

	longer := statement("x", green.NewToken(9, ";"))
	shorter := statement("x")

	d := analysis.Diff(shorter, longer)
	require.NotNil(t, d)
	assert.Nil(t, d.Left)
	require.NotNil(t, d.Right)
	assert.Equal(t, green.Kind(9), d.Right.Kind())
}
