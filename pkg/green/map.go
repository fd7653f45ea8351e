package green

import (
	"hash/maphash"
	"iter"
)

// Map associates values with Elements compared by structure rather than
// identity: two independently built but equal subtrees share one entry.
//
// Keys are borrowed. The Map does not clone or release them, so they must
// stay alive as long as the Map is used. A Map is not safe for concurrent
// writes.
type Map[V any] struct {
	seed    maphash.Seed
	buckets map[uint64][]mapEntry[V]
	size    int
}

type mapEntry[V any] struct {
	key   Element
	value V
}

// NewMap returns an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{
		seed:    maphash.MakeSeed(),
		buckets: make(map[uint64][]mapEntry[V]),
	}
}

// Get returns the value stored for a key equal to key.
func (m *Map[V]) Get(key Element) (V, bool) {
	for _, e := range m.buckets[HashElement(m.seed, key)] {
		if EqualElements(e.key, key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Set stores value for key. If an equal key is already present its value is
// replaced and the original key is kept.
func (m *Map[V]) Set(key Element, value V) {
	h := HashElement(m.seed, key)
	bucket := m.buckets[h]
	for i := range bucket {
		if EqualElements(bucket[i].key, key) {
			bucket[i].value = value
			return
		}
	}
	m.buckets[h] = append(bucket, mapEntry[V]{key: key, value: value})
	m.size++
}

// Update applies fn to the value stored for key, or to the zero value if
// there is none, and stores the result.
func (m *Map[V]) Update(key Element, fn func(V) V) {
	old, _ := m.Get(key)
	m.Set(key, fn(old))
}

// Len returns the number of distinct keys.
func (m *Map[V]) Len() int {
	return m.size
}

// All ranges over the entries in no particular order.
func (m *Map[V]) All() iter.Seq2[Element, V] {
	return func(yield func(Element, V) bool) {
		for _, bucket := range m.buckets {
			for _, e := range bucket {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}
