package green

import (
	"encoding/binary"
	"hash/maphash"
)

// Variant markers written ahead of a child's own hash input.
const (
	hashVariantNode  byte = 0
	hashVariantToken byte = 1
)

// WriteHash writes t's kind and text to h. Equal tokens write equal input.
func (t Token) WriteHash(h *maphash.Hash) {
	writeUint16(h, uint16(t.Kind()))
	_, _ = h.WriteString(t.Text())
	_ = h.WriteByte(0xff)
}

// Hash returns a hash of t's kind and text under seed.
func (t Token) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	t.WriteHash(&h)
	return h.Sum64()
}

// WriteHash writes n's kind, text length and children to h. Equal nodes
// write equal input; the handle's address is never used.
func (n Node) WriteHash(h *maphash.Hash) {
	writeUint16(h, uint16(n.Kind()))
	writeUint32(h, uint32(n.TextLen()))

	children := n.children()
	writeUint32(h, uint32(len(children)))
	for _, c := range children {
		c.writeHash(h)
	}
}

// Hash returns a structural hash of n under seed.
func (n Node) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	n.WriteHash(&h)
	return h.Sum64()
}

// WriteElementHash writes el's variant and contents to h.
func WriteElementHash(h *maphash.Hash, el Element) {
	childOf(el).writeHash(h)
}

// HashElement returns a structural hash of el under seed. It is consistent
// with EqualElements.
func HashElement(seed maphash.Seed, el Element) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	WriteElementHash(&h, el)
	return h.Sum64()
}

func (c child) writeHash(h *maphash.Hash) {
	switch v := c.view().(type) {
	case Node:
		_ = h.WriteByte(hashVariantNode)
		v.WriteHash(h)
	case Token:
		_ = h.WriteByte(hashVariantToken)
		v.WriteHash(h)
	}
}

func writeUint16(h *maphash.Hash, v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, _ = h.Write(buf[:])
}

func writeUint32(h *maphash.Hash, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, _ = h.Write(buf[:])
}
