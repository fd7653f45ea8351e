package green_test

import (
	"hash/maphash"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bonsai/pkg/green"
)

func TestToken_EqualCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b green.Token
		want int
	}{
		{"same content", green.NewToken(5, "fn"), green.NewToken(5, "fn"), 0},
		{"kind first", green.NewToken(1, "zzz"), green.NewToken(2, "aaa"), -1},
		{"text second", green.NewToken(1, "b"), green.NewToken(1, "a"), 1},
		{"prefix shorter", green.NewToken(1, "ab"), green.NewToken(1, "abc"), -1},
		{"empty", green.NewToken(1, ""), green.NewToken(1, ""), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.a.Compare(tc.b))
			assert.Equal(t, -tc.want, tc.b.Compare(tc.a))
			assert.Equal(t, tc.want == 0, tc.a.Equal(tc.b))
		})
	}
}

func TestToken_IdentityEqual(t *testing.T) {
	t.Parallel()

	tok := green.NewToken(5, "fn")
	clone := tok.Clone()

	assert.True(t, tok.Equal(clone))
	assert.Equal(t, 0, tok.Compare(clone))
}

func TestNode_StructuralEquality(t *testing.T) {
	t.Parallel()

	a := sampleTree()
	b := sampleTree()

	assert.False(t, a == b, "independently built trees are distinct allocations")
	assert.True(t, a.Equal(b))
	assert.Equal(t, 0, a.Compare(b))

	seed := maphash.MakeSeed()
	assert.Equal(t, a.Hash(seed), b.Hash(seed))
}

func TestNode_Compare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b green.Node
		want int
	}{
		{
			name: "kind first",
			a:    green.NewNode(1, 9),
			b:    green.NewNode(2, 0),
			want: -1,
		},
		{
			name: "length second",
			a:    green.NewNode(1, 3),
			b:    green.NewNode(1, 2),
			want: 1,
		},
		{
			name: "children element-wise",
			a:    green.NewNode(1, 1, green.NewToken(1, "a")),
			b:    green.NewNode(1, 1, green.NewToken(1, "b")),
			want: -1,
		},
		{
			name: "shorter children first",
			a:    green.NewNode(1, 1, green.NewToken(1, "a")),
			b:    green.NewNode(1, 1, green.NewToken(1, "a"), green.NewToken(1, "")),
			want: -1,
		},
		{
			name: "nodes before tokens",
			a:    green.NewNode(1, 1, green.NewNode(9, 1)),
			b:    green.NewNode(1, 1, green.NewToken(0, "a")),
			want: -1,
		},
		{
			name: "recursive",
			a:    green.NewNode(1, 1, green.NewNode(2, 1, green.NewToken(3, "y"))),
			b:    green.NewNode(1, 1, green.NewNode(2, 1, green.NewToken(3, "x"))),
			want: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.a.Compare(tc.b))
			assert.Equal(t, -tc.want, tc.b.Compare(tc.a))
			assert.Equal(t, tc.want == 0, tc.a.Equal(tc.b))
		})
	}
}

func TestCompareElements_VariantOrder(t *testing.T) {
	t.Parallel()

	node := green.NewNode(100, 100)
	tok := green.NewToken(0, "")

	assert.Equal(t, -1, green.CompareElements(node, tok))
	assert.Equal(t, 1, green.CompareElements(tok, node))
	assert.False(t, green.EqualElements(node, tok))
}

func TestEqualElements_NodeAndTokenSameKind(t *testing.T) {
	t.Parallel()

	assert.False(t, green.EqualElements(green.NewNode(1, 0), green.NewToken(1, "")))
}

func TestHash_ConsistentWithEquality(t *testing.T) {
	t.Parallel()

	seed := maphash.MakeSeed()

	a := green.NewToken(5, "fn")
	b := green.NewToken(5, "fn")
	assert.Equal(t, a.Hash(seed), b.Hash(seed))
	assert.Equal(t, a.Hash(seed), a.Clone().Hash(seed))
	assert.Equal(t, green.HashElement(seed, a), green.HashElement(seed, b))

	// The hash is derived from content, not from the tagged address.
	assert.NotEqual(t, green.HashElement(seed, green.NewNode(5, 2)), green.HashElement(seed, a))
}

func TestHash_DistinguishesTokenBoundaries(t *testing.T) {
	t.Parallel()

	seed := maphash.MakeSeed()

	ab := green.NewNode(1, 2, green.NewToken(1, "a"), green.NewToken(1, "b"))
	abJoined := green.NewNode(1, 2, green.NewToken(1, "ab"), green.NewToken(1, ""))

	require.False(t, ab.Equal(abJoined))
	assert.NotEqual(t, ab.Hash(seed), abJoined.Hash(seed))
}

func TestComparison_Properties(t *testing.T) {
	t.Parallel()

	const count = 60
	seed := maphash.MakeSeed()

	elems := make([]green.Element, 0, 2*count)
	for i := range count {
		// Building each tree twice yields equal, distinct allocations.
		elems = append(elems,
			randomElement(rand.New(rand.NewPCG(uint64(i), 7)), 3),
			randomElement(rand.New(rand.NewPCG(uint64(i), 7)), 3),
		)
	}

	for i := 0; i < len(elems); i += 2 {
		assert.True(t, green.EqualElements(elems[i], elems[i+1]), "rebuilt tree %d differs", i/2)
	}

	for _, a := range elems {
		for _, b := range elems {
			ab := green.CompareElements(a, b)
			ba := green.CompareElements(b, a)

			assert.Equal(t, -ab, ba, "antisymmetry for %v / %v", a, b)
			assert.Equal(t, ab == 0, green.EqualElements(a, b), "Compare and Equal disagree for %v / %v", a, b)
			if ab == 0 {
				assert.Equal(t, green.HashElement(seed, a), green.HashElement(seed, b))
			}
		}
	}

	sorted := slices.Clone(elems)
	slices.SortFunc(sorted, green.CompareElements)
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			assert.LessOrEqual(t, green.CompareElements(sorted[i], sorted[j]), 0,
				"sorted order not transitive at %d, %d", i, j)
		}
	}
}
