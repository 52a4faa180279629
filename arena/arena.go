// Package arena provides the call-scoped scratch allocator used to stage
// curve-engine inputs and outputs. An Arena is a bump allocator over a single
// growable byte store: allocations only ever advance a frontier, individual
// regions are never freed, and the whole arena is dropped when the enclosing
// call returns. Regions are opaque (offset, length) handles; the bytes behind
// a region stay addressable and stable for the arena's entire lifetime.
package arena

import "fmt"

// Region is an opaque handle to a contiguous range of arena memory.
// The zero Region is empty and valid.
type Region struct {
	off int
	n   int
}

// Offset returns the region's base offset within the arena.
func (r Region) Offset() int { return r.off }

// Len returns the region's length in bytes.
func (r Region) Len() int { return r.n }

// End returns the offset one past the region's last byte.
func (r Region) End() int { return r.off + r.n }

// Slice returns a sub-region at [off, off+n) relative to r. It panics if the
// requested range does not lie within r; sub-region arithmetic is internal
// layout logic, so an out-of-range request is a programming error.
func (r Region) Slice(off, n int) Region {
	if off < 0 || n < 0 || off+n > r.n {
		panic(fmt.Sprintf("arena: sub-region [%d:%d) outside region of length %d", off, off+n, r.n))
	}
	return Region{off: r.off + off, n: n}
}

// Arena is a call-scoped bump allocator. It is not safe for concurrent use;
// each logical call owns its own instance.
type Arena struct {
	store    []byte
	frontier int
}

// New returns an Arena with the given initial capacity. The arena grows on
// demand, so capacity is a sizing hint, not a limit.
func New(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{store: make([]byte, 0, capacity)}
}

// Alloc reserves n zeroed bytes and returns their region. The region's base
// is the prior frontier; the frontier advances by n and never moves back.
func (a *Arena) Alloc(n int) Region {
	if n < 0 {
		panic("arena: negative allocation")
	}
	r := Region{off: a.frontier, n: n}
	a.frontier += n
	a.grow(a.frontier)
	return r
}

// Protect advances the frontier to at least the end of r, so that data
// written below the old frontier (engine output overwriting an input prefix)
// cannot be handed out again by a later Alloc. Protecting an already-covered
// region is a no-op; the frontier never moves backward.
func (a *Arena) Protect(r Region) {
	if end := r.End(); end > a.frontier {
		a.frontier = end
		a.grow(a.frontier)
	}
}

// Bytes returns the slice of arena memory backing r. The slice aliases the
// arena's current store: writes through it are visible to every other Bytes
// of the same region. A later Alloc may reallocate the store, so holders of
// long-lived references keep the (arena, region) pair and re-derive the
// slice instead of retaining it across allocations.
func (a *Arena) Bytes(r Region) []byte {
	return a.store[r.off:r.End():r.End()]
}

// Frontier returns the current allocation frontier in bytes.
func (a *Arena) Frontier() int { return a.frontier }

// grow extends the backing store to at least size bytes. Contents of already
// allocated regions are preserved across a reallocation.
func (a *Arena) grow(size int) {
	if size <= len(a.store) {
		return
	}
	if size <= cap(a.store) {
		a.store = a.store[:size]
		return
	}
	next := make([]byte, size, 2*size)
	copy(next, a.store)
	a.store = next
}
