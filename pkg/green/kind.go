package green

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/bonsai/internal/vardata"
)

// Kind classifies a Node or Token. Its meaning belongs to the grammar that
// builds the tree.
type Kind uint16

func (k Kind) String() string {
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// TextLen is a length in bytes of source text.
type TextLen uint32

// Errors raised, via panic, when a construction contract is violated.
var (
	// ErrLengthMismatch means a child sequence yielded a different number of
	// elements than it declared.
	ErrLengthMismatch = vardata.ErrLengthMismatch

	// ErrTooLarge means a record would exceed 32-bit counts or the address
	// space.
	ErrTooLarge = vardata.ErrTooLarge

	// ErrInvalidText means a token's text is not valid UTF-8.
	ErrInvalidText = errors.New("token text is not valid UTF-8")

	// ErrNilElement means a zero handle or nil Element was used as a child.
	ErrNilElement = errors.New("nil element")

	// ErrTextLenOverflow means a summed text length does not fit in TextLen.
	ErrTextLenOverflow = errors.New("text length overflows 32 bits")
)

// SumTextLen adds the text lengths of elems, failing on overflow.
func SumTextLen(elems ...Element) (TextLen, error) {
	var total uint64
	for _, el := range elems {
		total += uint64(el.TextLen())
		if total > uint64(^TextLen(0)) {
			return 0, fmt.Errorf("%w: %d", ErrTextLenOverflow, total)
		}
	}
	return TextLen(total), nil
}

// Stats counts Node and Token allocations over the life of the process.
type Stats = vardata.Stats

// ReadStats returns the current allocation counters. Live reports records
// that have been built and not yet released for the last time.
func ReadStats() Stats {
	return vardata.ReadStats()
}
