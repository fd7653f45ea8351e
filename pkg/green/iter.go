package green

import "iter"

// AllChildren iterates over every child of a Node, in order.
type AllChildren struct {
	slots []child
}

// Next returns the next child, borrowed.
func (it *AllChildren) Next() (Element, bool) {
	if len(it.slots) == 0 {
		return nil, false
	}
	c := it.slots[0]
	it.slots = it.slots[1:]
	return c.view(), true
}

// Len returns the number of children not yet returned by Next.
func (it *AllChildren) Len() int {
	return len(it.slots)
}

// NodeChildren iterates over the children of a Node that are Nodes.
type NodeChildren struct {
	slots []child
}

// Next returns the next child Node, borrowed.
func (it *NodeChildren) Next() (Node, bool) {
	for len(it.slots) > 0 {
		c := it.slots[0]
		it.slots = it.slots[1:]
		if node, ok := c.view().(Node); ok {
			return node, true
		}
	}
	return Node{}, false
}

// TokenChildren iterates over the children of a Node that are Tokens.
type TokenChildren struct {
	slots []child
}

// Next returns the next child Token, borrowed.
func (it *TokenChildren) Next() (Token, bool) {
	for len(it.slots) > 0 {
		c := it.slots[0]
		it.slots = it.slots[1:]
		if tok, ok := c.view().(Token); ok {
			return tok, true
		}
	}
	return Token{}, false
}

// AllChildren returns a fresh iterator over all children.
func (n Node) AllChildren() AllChildren {
	return AllChildren{slots: n.children()}
}

// NodeChildren returns a fresh iterator over the child Nodes.
func (n Node) NodeChildren() NodeChildren {
	return NodeChildren{slots: n.children()}
}

// TokenChildren returns a fresh iterator over the child Tokens.
func (n Node) TokenChildren() TokenChildren {
	return TokenChildren{slots: n.children()}
}

// Children ranges over all children, borrowed.
func (n Node) Children() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, c := range n.children() {
			if !yield(c.view()) {
				return
			}
		}
	}
}

// ChildNodes ranges over the child Nodes, borrowed.
func (n Node) ChildNodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		it := n.NodeChildren()
		for node, ok := it.Next(); ok; node, ok = it.Next() {
			if !yield(node) {
				return
			}
		}
	}
}

// ChildTokens ranges over the child Tokens, borrowed.
func (n Node) ChildTokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		it := n.TokenChildren()
		for tok, ok := it.Next(); ok; tok, ok = it.Next() {
			if !yield(tok) {
				return
			}
		}
	}
}
