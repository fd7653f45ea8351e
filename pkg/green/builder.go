package green

import (
	"errors"
	"fmt"
)

// ErrUnbalanced is returned or raised when Builder calls do not nest.
var ErrUnbalanced = errors.New("unbalanced builder")

// Builder assembles a tree top-down while constructing it bottom-up: each
// FinishNode turns the elements pushed since the matching StartNode into a
// Node. A finished Node's text length is the sum of its children's.
//
// The zero Builder is ready to use.
type Builder struct {
	parents  []openNode
	children []Element
}

type openNode struct {
	kind  Kind
	first int
}

// Checkpoint marks a position in the Builder so a node can later be
// started around elements that were already pushed.
type Checkpoint int

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// StartNode opens a node of the given kind.
func (b *Builder) StartNode(kind Kind) {
	b.parents = append(b.parents, openNode{kind: kind, first: len(b.children)})
}

// Token appends a new token to the open node.
func (b *Builder) Token(kind Kind, text string) {
	b.children = append(b.children, NewToken(kind, text))
}

// Push appends an existing element to the open node, taking ownership of
// it. This is how unchanged subtrees are reused in a new tree.
func (b *Builder) Push(el Element) {
	if isZero(el) {
		panic(fmt.Errorf("green: builder: %w", ErrNilElement))
	}
	b.children = append(b.children, el)
}

// Checkpoint returns the current position.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.children))
}

// StartNodeAt opens a node that will also contain everything pushed since
// cp. It panics if cp lies outside the currently open node.
func (b *Builder) StartNodeAt(cp Checkpoint, kind Kind) {
	pos := int(cp)
	if pos > len(b.children) {
		panic(fmt.Errorf("green: checkpoint %d beyond %d elements: %w", pos, len(b.children), ErrUnbalanced))
	}
	if n := len(b.parents); n > 0 && pos < b.parents[n-1].first {
		panic(fmt.Errorf("green: checkpoint %d precedes the open node: %w", pos, ErrUnbalanced))
	}
	b.parents = append(b.parents, openNode{kind: kind, first: pos})
}

// FinishNode closes the innermost open node. It panics if no node is open.
func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic(fmt.Errorf("green: finish without start: %w", ErrUnbalanced))
	}
	top := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	elems := b.children[top.first:]
	textLen, err := SumTextLen(elems...)
	if err != nil {
		panic(fmt.Errorf("green: finish node: %w", err))
	}
	node := NewNode(top.kind, textLen, elems...)

	clear(elems)
	b.children = append(b.children[:top.first], node)
}

// Depth returns the number of open nodes.
func (b *Builder) Depth() int {
	return len(b.parents)
}

// Finish returns the single root node and empties the Builder.
func (b *Builder) Finish() (Node, error) {
	if len(b.parents) != 0 {
		return Node{}, fmt.Errorf("%d nodes still open: %w", len(b.parents), ErrUnbalanced)
	}
	if len(b.children) != 1 {
		return Node{}, fmt.Errorf("%d root elements, want 1: %w", len(b.children), ErrUnbalanced)
	}
	root, ok := b.children[0].(Node)
	if !ok {
		return Node{}, fmt.Errorf("root is a token: %w", ErrUnbalanced)
	}

	b.children[0] = nil
	b.children = b.children[:0]
	return root, nil
}

// Reset releases every pending element and closes all open nodes.
func (b *Builder) Reset() {
	for _, el := range b.children {
		ReleaseElement(el)
	}
	clear(b.children)
	b.children = b.children[:0]
	b.parents = b.parents[:0]
}
