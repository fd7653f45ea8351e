package green

import (
	"fmt"
	"iter"
	"slices"
	"unsafe"

	"github.com/yaklabco/bonsai/internal/vardata"
)

type nodeHeader struct {
	kind    Kind
	textLen TextLen
}

// Node is a shared, immutable interior record: a kind, a text length and
// an ordered sequence of children.
//
// The zero Node is not a valid handle.
type Node struct {
	ptr unsafe.Pointer
}

// NewNode builds a Node from its kind, its text length and its children.
// Ownership of every child moves into the new Node; the caller must not
// release them afterwards.
//
// textLen is stored as given. It is not derived from, or checked against,
// the children.
func NewNode(kind Kind, textLen TextLen, children ...Element) Node {
	return NewNodeSeq(kind, textLen, len(children), slices.Values(children))
}

// NewNodeSeq is NewNode for a child sequence of declared length n. It
// panics with ErrLengthMismatch if children yields more or fewer than n
// elements.
func NewNodeSeq(kind Kind, textLen TextLen, n int, children iter.Seq[Element]) Node {
	slots := func(yield func(child) bool) {
		if children == nil {
			return
		}
		for el := range children {
			if !yield(childOf(el)) {
				return
			}
		}
	}
	p := vardata.New(nodeHeader{kind: kind, textLen: textLen}, n, slots)
	return Node{ptr: p}
}

// IsZero reports whether n is the zero handle.
func (n Node) IsZero() bool {
	return n.ptr == nil
}

// Kind returns the node's kind.
func (n Node) Kind() Kind {
	return vardata.Header[nodeHeader](n.ptr).kind
}

// TextLen returns the text length the node was built with.
func (n Node) TextLen() TextLen {
	return vardata.Header[nodeHeader](n.ptr).textLen
}

// NumChildren returns the number of direct children.
func (n Node) NumChildren() int {
	return vardata.Len(n.ptr)
}

// ChildAt returns the i'th child, borrowed. It panics if i is out of range.
func (n Node) ChildAt(i int) Element {
	return n.children()[i].view()
}

func (n Node) children() []child {
	return vardata.Slice[nodeHeader, child](n.ptr)
}

// Clone returns a new owning handle to the same node.
func (n Node) Clone() Node {
	vardata.Clone(n.ptr)
	return n
}

// Release drops this handle's reference. Dropping the last reference
// releases every child in order, and through them the whole subtree.
func (n Node) Release() {
	if vardata.Release(n.ptr) {
		dropNode(n.ptr)
	}
}

// dropNode frees a node whose count already reached zero, releasing its
// children depth-first and in order. It keeps an explicit stack so deep
// trees do not deepen the call stack.
func dropNode(p unsafe.Pointer) {
	var pending []unsafe.Pointer
	for p != nil {
		children := vardata.Slice[nodeHeader, child](p)
		for i := len(children) - 1; i >= 0; i-- {
			pending = append(pending, children[i].ptr)
		}
		clear(children)
		vardata.Free(p)

		p = nil
		for p == nil && len(pending) > 0 {
			c := pending[len(pending)-1]
			pending = pending[:len(pending)-1]

			if hasTag(c) {
				Token{ptr: c}.Release()
			} else if vardata.Release(c) {
				p = c
			}
		}
	}
}

func (n Node) String() string {
	if n.IsZero() {
		return "Node(nil)"
	}
	return fmt.Sprintf("Node(%d, len=%d, children=%d)", n.Kind(), n.TextLen(), n.NumChildren())
}

func (Node) isElement() {}
