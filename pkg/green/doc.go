// Package green provides immutable, structurally shared syntax trees.
//
// A tree is made of Nodes (interior records with a kind, a text length and
// ordered children) and Tokens (leaves with a kind and their text). Each
// Node or Token is a single heap allocation addressed by a one-word handle.
// Children are stored inline in their parent's allocation as one-word
// slots; the lowest bit of a slot tells a Token from a Node.
//
// Handles are reference counted. NewNode takes ownership of the children
// it is given, Clone adds a reference and Release drops one. Releasing the
// last reference of a Node releases its whole subtree. Handles obtained by
// inspecting a Node (AllChildren, Children, ChildAt, ...) are borrowed: they
// stay valid while the parent is alive and must not be released. Clone a
// borrowed handle to keep it beyond that.
//
// Trees are immutable, so any number of goroutines may read them and
// Clone/Release them concurrently.
//
// The == operator on handles compares identity. Equal, Compare and Hash
// compare structure: two independently built trees with the same kinds,
// lengths, texts and shape are equal.
package green
