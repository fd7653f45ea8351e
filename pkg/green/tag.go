package green

import "unsafe"

// tagBit marks a Token handle. Records are at least 8-byte aligned, so the
// bit is otherwise always clear. A tagged pointer still points inside the
// record, which keeps it visible to the garbage collector.
const tagBit = 1

func tag(p unsafe.Pointer) unsafe.Pointer {
	if hasTag(p) {
		panic("green: tagging an already tagged handle")
	}
	return unsafe.Add(p, tagBit)
}

func untag(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(p, -tagBit)
}

func hasTag(p unsafe.Pointer) bool {
	return uintptr(p)&tagBit != 0
}
