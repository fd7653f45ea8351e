package green

import (
	"cmp"
	"strings"
)

// Equal reports whether t and u have the same kind and text. Handles to the
// same token are equal without looking at either.
func (t Token) Equal(u Token) bool {
	if t.ptr == u.ptr {
		return true
	}
	return t.Kind() == u.Kind() && t.Text() == u.Text()
}

// Compare orders tokens by kind, then by text bytes. It returns -1, 0 or +1.
func (t Token) Compare(u Token) int {
	if t.ptr == u.ptr {
		return 0
	}
	if c := cmp.Compare(t.Kind(), u.Kind()); c != 0 {
		return c
	}
	return strings.Compare(t.Text(), u.Text())
}

// Equal reports whether n and m have the same kind and text length and
// pairwise equal children. Handles to the same node are equal without
// looking at either.
func (n Node) Equal(m Node) bool {
	if n.ptr == m.ptr {
		return true
	}
	if n.Kind() != m.Kind() || n.TextLen() != m.TextLen() {
		return false
	}

	a, b := n.children(), m.children()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].equal(b[i]) {
			return false
		}
	}
	return true
}

// Compare orders nodes by kind, then text length, then children compared
// element by element, a shorter prefix first. It returns -1, 0 or +1.
func (n Node) Compare(m Node) int {
	if n.ptr == m.ptr {
		return 0
	}
	if c := cmp.Compare(n.Kind(), m.Kind()); c != 0 {
		return c
	}
	if c := cmp.Compare(n.TextLen(), m.TextLen()); c != 0 {
		return c
	}

	a, b := n.children(), m.children()
	for i := range min(len(a), len(b)) {
		if c := a[i].compare(b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// EqualElements reports whether a and b hold the same variant with equal
// contents.
func EqualElements(a, b Element) bool {
	return childOf(a).equal(childOf(b))
}

// CompareElements orders elements. Any Node sorts before any Token;
// otherwise the variants' own Compare applies.
func CompareElements(a, b Element) int {
	return childOf(a).compare(childOf(b))
}

func (c child) equal(o child) bool {
	if c.ptr == o.ptr {
		return true
	}
	switch a := c.view().(type) {
	case Node:
		b, ok := o.view().(Node)
		return ok && a.Equal(b)
	case Token:
		b, ok := o.view().(Token)
		return ok && a.Equal(b)
	}
	return false
}

func (c child) compare(o child) int {
	if c.ptr == o.ptr {
		return 0
	}
	switch a := c.view().(type) {
	case Node:
		if b, ok := o.view().(Node); ok {
			return a.Compare(b)
		}
		return -1
	case Token:
		if b, ok := o.view().(Token); ok {
			return a.Compare(b)
		}
		return 1
	}
	return 0
}
