package green

import (
	"fmt"
	"strconv"
	"unicode/utf8"
	"unsafe"

	"github.com/yaklabco/bonsai/internal/vardata"
)

// Token is a shared, immutable leaf: a kind and the text it covers.
//
// The zero Token is not a valid handle.
type Token struct {
	// ptr is tagged; see tag.go.
	ptr unsafe.Pointer
}

// NewToken builds a Token holding a copy of text. It panics with
// ErrInvalidText if text is not valid UTF-8.
func NewToken(kind Kind, text string) Token {
	if !utf8.ValidString(text) {
		panic(fmt.Errorf("green: %w: %q", ErrInvalidText, text))
	}
	p := vardata.NewCopy(kind, unsafe.Slice(unsafe.StringData(text), len(text)))
	return Token{ptr: tag(p)}
}

// IsZero reports whether t is the zero handle.
func (t Token) IsZero() bool {
	return t.ptr == nil
}

// Kind returns the token's kind.
func (t Token) Kind() Kind {
	return *vardata.Header[Kind](untag(t.ptr))
}

// TextLen returns the length of the token's text in bytes.
func (t Token) TextLen() TextLen {
	return TextLen(vardata.Len(untag(t.ptr)))
}

// Text returns the token's text. The string shares the token's memory.
func (t Token) Text() string {
	b := vardata.Slice[Kind, byte](untag(t.ptr))
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Clone returns a new owning handle to the same token.
func (t Token) Clone() Token {
	vardata.Clone(untag(t.ptr))
	return t
}

// Release drops this handle's reference.
func (t Token) Release() {
	p := untag(t.ptr)
	if vardata.Release(p) {
		vardata.Free(p)
	}
}

func (t Token) String() string {
	if t.IsZero() {
		return "Token(nil)"
	}
	return fmt.Sprintf("Token(%d, %s)", t.Kind(), strconv.Quote(t.Text()))
}

func (Token) isElement() {}
