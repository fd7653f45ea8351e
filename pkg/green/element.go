package green

import (
	"fmt"
	"unsafe"
)

// Element is either a Node or a Token.
//
// Passed to NewNode, an Element hands over ownership of the value it holds.
// Returned from inspection, it is a borrowed view. Use a type switch to
// recover the variant:
//
//	switch el := el.(type) {
//	case green.Node:
//	case green.Token:
//	}
type Element interface {
	Kind() Kind
	TextLen() TextLen
	String() string

	isElement()
}

// CloneElement returns a new owning handle to the value el holds.
func CloneElement(el Element) Element {
	switch el := el.(type) {
	case Node:
		return el.Clone()
	case Token:
		return el.Clone()
	default:
		panic(fmt.Errorf("green: clone: %w", ErrNilElement))
	}
}

// ReleaseElement drops the reference held by el.
func ReleaseElement(el Element) {
	switch el := el.(type) {
	case Node:
		el.Release()
	case Token:
		el.Release()
	default:
		panic(fmt.Errorf("green: release: %w", ErrNilElement))
	}
}

// child is one slot of a Node: an owning handle to a Node or, when the low
// bit is set, a Token.
type child struct {
	ptr unsafe.Pointer
}

// childOf adopts the handle held by el. Ownership moves into the slot.
func childOf(el Element) child {
	var p unsafe.Pointer
	switch el := el.(type) {
	case Node:
		p = el.ptr
	case Token:
		p = el.ptr
	}
	if p == nil {
		panic(fmt.Errorf("green: child: %w", ErrNilElement))
	}
	return child{ptr: p}
}

// view is the only place that tells Tokens from Nodes.
func (c child) view() Element {
	if hasTag(c.ptr) {
		return Token{ptr: c.ptr}
	}
	return Node{ptr: c.ptr}
}

// isZero reports whether el is nil or a zero handle.
func isZero(el Element) bool {
	switch el := el.(type) {
	case Node:
		return el.IsZero()
	case Token:
		return el.IsZero()
	}
	return true
}
