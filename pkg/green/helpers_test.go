package green_test

import (
	"math/rand/v2"
	"strings"

	"github.com/yaklabco/bonsai/pkg/green"
)

// randomElement builds a small random tree. The alphabet is tiny so that
// equal subtrees show up often.
func randomElement(rng *rand.Rand, depth int) green.Element {
	if depth == 0 || rng.IntN(3) == 0 {
		return green.NewToken(green.Kind(rng.IntN(2)), strings.Repeat("ab", rng.IntN(3)))
	}

	count := rng.IntN(3)
	children := make([]green.Element, count)
	for i := range children {
		children[i] = randomElement(rng, depth-1)
	}
	return green.NewNode(green.Kind(rng.IntN(2)), green.TextLen(rng.IntN(2)), children...)
}

// sampleTree builds:
//
//	Node(1)
//	  Token(2, "let")
//	  Node(3)
//	    Token(4, "x")
//	  Token(2, ";")
//	  Node(5)
func sampleTree() green.Node {
	return green.NewNode(1, 5,
		green.NewToken(2, "let"),
		green.NewNode(3, 1, green.NewToken(4, "x")),
		green.NewToken(2, ";"),
		green.NewNode(5, 0),
	)
}
