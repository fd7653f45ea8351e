// Package vardata packs a fixed-size header and a trailing run of
// homogeneous elements into one heap allocation addressed by a single
// pointer.
//
// The element count lives inside the allocation, next to an atomic
// reference count, so a handle is exactly one machine word. Accessors widen
// the handle back into a header reference or a bounds-checked slice by
// reading the stored count.
//
// Records are shared through Clone and Release. The final Release reports
// true, after which the owner drops whatever the trailing elements refer to
// and calls Free. Memory itself is reclaimed by the garbage collector once
// nothing points into the record any more.
package vardata

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/bits"
	"reflect"
	"sync"
	"sync/atomic"
	"unsafe"
)

var (
	// ErrTooLarge is raised when a record's element count does not fit in
	// 32 bits or its byte size would overflow the address space.
	ErrTooLarge = errors.New("record too large")

	// ErrLengthMismatch is raised when a sequence yields a different number
	// of elements than it declared.
	ErrLengthMismatch = errors.New("element count does not match declared length")

	// ErrReleased is raised when a record is cloned or released after its
	// reference count reached zero.
	ErrReleased = errors.New("record already released")
)

// exactClasses is the largest capacity allocated without rounding.
const exactClasses = 32

// meta is the part of every record that does not depend on the header type.
type meta struct {
	len  uint32
	refs atomic.Int64
}

// prefix is laid out at offset zero of every record.
type prefix[H any] struct {
	meta
	header H
}

type typeKey struct {
	prefix reflect.Type
	elem   reflect.Type
	cap    int
}

//nolint:gochecknoglobals // Process-wide type cache and allocation counters.
var (
	recordTypes sync.Map // typeKey -> reflect.Type

	allocated atomic.Int64
	freed     atomic.Int64
)

// New allocates a record holding header and exactly n elements drawn from
// elems. The count is stored before any element is written. The returned
// handle carries one reference and is aligned to at least 8 bytes.
//
// New panics with ErrTooLarge if n is negative, exceeds math.MaxUint32 or
// the record would not fit in the address space, and with
// ErrLengthMismatch if elems yields more or fewer than n elements.
func New[H, T any](header H, n int, elems iter.Seq[T]) unsafe.Pointer {
	p, slots := alloc[H, T](header, n)

	written := 0
	if elems != nil {
		for v := range elems {
			if written == n {
				panic(fmt.Errorf("%w: declared %d, got more", ErrLengthMismatch, n))
			}
			slots[written] = v
			written++
		}
	}
	if written != n {
		panic(fmt.Errorf("%w: declared %d, got %d", ErrLengthMismatch, n, written))
	}

	return p
}

// NewCopy allocates a record holding header and a copy of src.
func NewCopy[H, T any](header H, src []T) unsafe.Pointer {
	p, slots := alloc[H, T](header, len(src))
	copy(slots, src)
	return p
}

func alloc[H, T any](header H, n int) (unsafe.Pointer, []T) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		panic(fmt.Errorf("%w: %d elements", ErrTooLarge, n))
	}

	capacity := capacityFor(n)
	off := elemOffset[H, T]()
	if size := unsafe.Sizeof(*new(T)); size != 0 && uintptr(capacity) > (math.MaxInt-off)/size {
		panic(fmt.Errorf("%w: %d elements of %d bytes", ErrTooLarge, n, size))
	}

	typ := recordType[H, T](capacity)
	if typ.Field(1).Offset != off {
		panic(fmt.Sprintf("vardata: element offset %d, layout says %d", off, typ.Field(1).Offset))
	}

	p := reflect.New(typ).UnsafePointer()
	if uintptr(p)&1 != 0 {
		panic("vardata: misaligned record")
	}

	pre := (*prefix[H])(p)
	pre.len = uint32(n)
	pre.refs.Store(1)
	pre.header = header
	allocated.Add(1)

	if n == 0 {
		return p, nil
	}
	return p, unsafe.Slice((*T)(unsafe.Add(p, off)), n)
}

// Header returns a pointer to the header stored in p.
func Header[H any](p unsafe.Pointer) *H {
	return &(*prefix[H])(p).header
}

// Len returns the element count stored in p.
func Len(p unsafe.Pointer) int {
	return int((*meta)(p).len)
}

// Slice returns the trailing elements of p. The slice aliases the record.
func Slice[H, T any](p unsafe.Pointer) []T {
	n := (*meta)(p).len
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Add(p, elemOffset[H, T]())), n)
}

// Clone adds a reference to p and returns p.
func Clone(p unsafe.Pointer) unsafe.Pointer {
	if (*meta)(p).refs.Add(1) <= 1 {
		panic(fmt.Errorf("vardata: clone: %w", ErrReleased))
	}
	return p
}

// Release drops a reference to p and reports whether it was the last one.
func Release(p unsafe.Pointer) bool {
	refs := (*meta)(p).refs.Add(-1)
	if refs < 0 {
		panic(fmt.Errorf("vardata: release: %w", ErrReleased))
	}
	return refs == 0
}

// Refs returns the current reference count of p.
func Refs(p unsafe.Pointer) int64 {
	return (*meta)(p).refs.Load()
}

// Free records that p has been released for good. It must follow a Release
// that returned true, once the owner has dropped the trailing elements.
func Free(p unsafe.Pointer) {
	if (*meta)(p).refs.Load() != 0 {
		panic("vardata: free of a live record")
	}
	freed.Add(1)
}

// Stats counts records over the life of the process.
type Stats struct {
	Allocated int64
	Freed     int64
}

// Live returns the number of records allocated and not yet freed.
func (s Stats) Live() int64 {
	return s.Allocated - s.Freed
}

// ReadStats returns a snapshot of the allocation counters.
func ReadStats() Stats {
	return Stats{
		Allocated: allocated.Load(),
		Freed:     freed.Load(),
	}
}

// elemOffset is the byte offset of the first trailing element.
func elemOffset[H, T any]() uintptr {
	size := unsafe.Sizeof(prefix[H]{})
	align := unsafe.Alignof(*new(T))
	return (size + align - 1) &^ (align - 1)
}

// capacityFor rounds n up so that the number of distinct record types
// stays small: exact up to exactClasses, then within 1/8 of n.
func capacityFor(n int) int {
	if n <= exactClasses {
		return n
	}
	step := 1 << (bits.Len(uint(n)) - 4)
	return (n + step - 1) &^ (step - 1)
}

// recordType returns struct { Prefix prefix[H]; Elems [capacity]T }.
func recordType[H, T any](capacity int) reflect.Type {
	key := typeKey{
		prefix: reflect.TypeFor[prefix[H]](),
		elem:   reflect.TypeFor[T](),
		cap:    capacity,
	}
	if typ, ok := recordTypes.Load(key); ok {
		return typ.(reflect.Type) //nolint:forcetypeassert // Only reflect.Type is stored.
	}

	typ := reflect.StructOf([]reflect.StructField{
		{Name: "Prefix", Type: key.prefix},
		{Name: "Elems", Type: reflect.ArrayOf(capacity, key.elem)},
	})
	actual, _ := recordTypes.LoadOrStore(key, typ)
	return actual.(reflect.Type) //nolint:forcetypeassert // Only reflect.Type is stored.
}
