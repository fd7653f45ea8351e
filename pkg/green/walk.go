package green

import (
	"errors"
	"io"
	"iter"
	"strings"
)

// SkipChildren may be returned by a WalkFunc to skip the children of the
// Node just visited.
var SkipChildren = errors.New("skip children") //nolint:revive,staticcheck // Mirrors fs.SkipDir.

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(el Element) error

// Walk performs a pre-order traversal of the tree starting at root. If
// walkFunc returns an error other than SkipChildren, the walk stops
// immediately and returns that error. Elements passed to walkFunc are
// borrowed.
func Walk(root Element, walkFunc WalkFunc) error {
	if isZero(root) {
		return nil
	}

	err := walkFunc(root)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}

	node, ok := root.(Node)
	if !ok {
		return nil
	}
	for child := range node.Children() {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave after. Either callback
// may be nil. SkipChildren from enter skips the children but still calls
// leave.
func WalkWithContext(root Element, enter, leave WalkFunc) error {
	if isZero(root) {
		return nil
	}

	skip := false
	if enter != nil {
		err := enter(root)
		switch {
		case errors.Is(err, SkipChildren):
			skip = true
		case err != nil:
			return err
		}
	}

	if node, ok := root.(Node); ok && !skip {
		for child := range node.Children() {
			if err := WalkWithContext(child, enter, leave); err != nil {
				return err
			}
		}
	}

	if leave != nil {
		if err := leave(root); err != nil && !errors.Is(err, SkipChildren) {
			return err
		}
	}

	return nil
}

// FindAll returns all elements matching the predicate, in pre-order.
func FindAll(root Element, predicate func(el Element) bool) []Element {
	var result []Element

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(el Element) error {
		if predicate(el) {
			result = append(result, el)
		}
		return nil
	})

	return result
}

// FindFirst returns the first element matching the predicate.
func FindFirst(root Element, predicate func(el Element) bool) (Element, bool) {
	var found Element

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(el Element) error {
		if predicate(el) {
			found = el
			return errStopWalk
		}
		return nil
	})

	return found, found != nil
}

// FindByKind returns all elements of the specified kind.
func FindByKind(root Element, kind Kind) []Element {
	return FindAll(root, func(el Element) bool {
		return el.Kind() == kind
	})
}

// Tokens ranges over every token under root, left to right.
func Tokens(root Element) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
		Walk(root, func(el Element) error {
			if tok, ok := el.(Token); ok && !yield(tok) {
				return errStopWalk
			}
			return nil
		})
	}
}

// WriteText writes the text of every token under root to w, in order.
func WriteText(w io.Writer, root Element) error {
	for tok := range Tokens(root) {
		if _, err := io.WriteString(w, tok.Text()); err != nil {
			return err
		}
	}
	return nil
}

// Text returns the concatenated text of every token under root.
func Text(root Element) string {
	var sb strings.Builder
	_ = WriteText(&sb, root)
	return sb.String()
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
