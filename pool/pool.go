// Package pool provides a generic free-list recycler for objects used on the
// render hot path.
//
// Objects are referenced through generation-checked handles: freeing a handle
// bumps its slot's generation so that any copy of the old handle becomes
// stale. Value returns nil for stale handles and Free reports double frees
// instead of corrupting the free list.
//
// A Pool is meant to be used by a single goroutine.
//
package pool

// Handle references an object acquired from a Pool. The zero Handle is never
// valid.
//
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
//
func (h Handle) IsZero() bool { return h.gen == 0 }

type slot[T any] struct {
	v    *T
	gen  uint32
	used bool
}

// A Pool recycles *T values.
//
type Pool[T any] struct {
	newFn func() *T
	reset func(*T)
	slots []slot[T]
	free  []uint32
	inUse int
}

// New returns a new Pool. newFn constructs fresh objects, reset (which may be
// nil) is applied to every recycled object before Get returns it. The pool is
// pre-warmed with prewarm objects.
//
func New[T any](newFn func() *T, reset func(*T), prewarm int) *Pool[T] {
	p := &Pool[T]{
		newFn: newFn,
		reset: reset,
		slots: make([]slot[T], 0, prewarm),
		free:  make([]uint32, 0, prewarm),
	}
	for i := 0; i < prewarm; i++ {
		p.slots = append(p.slots, slot[T]{v: newFn(), gen: 1})
	}
	// pop order: lowest index first
	for i := prewarm - 1; i >= 0; i-- {
		p.free = append(p.free, uint32(i))
	}
	return p
}

// Get returns a handle to a free object along with the object itself. The
// object is reset if it was recycled.
//
func (p *Pool[T]) Get() (Handle, *T) {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
		if p.reset != nil {
			p.reset(p.slots[idx].v)
		}
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, slot[T]{v: p.newFn(), gen: 1})
	}
	s := &p.slots[idx]
	s.used = true
	p.inUse++
	return Handle{index: idx, gen: s.gen}, s.v
}

// Value returns the object referenced by h, or nil if h is stale or zero.
//
func (p *Pool[T]) Value(h Handle) *T {
	if !p.valid(h) {
		return nil
	}
	return p.slots[h.index].v
}

// Free returns the object referenced by h to the pool. It returns false and
// does nothing if h is stale, zero, or already freed.
//
func (p *Pool[T]) Free(h Handle) bool {
	if !p.valid(h) {
		return false
	}
	s := &p.slots[h.index]
	s.used = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	p.free = append(p.free, h.index)
	p.inUse--
	return true
}

func (p *Pool[T]) valid(h Handle) bool {
	if h.gen == 0 || int(h.index) >= len(p.slots) {
		return false
	}
	s := &p.slots[h.index]
	return s.used && s.gen == h.gen
}

// InUse returns the number of objects currently handed out.
//
func (p *Pool[T]) InUse() int { return p.inUse }

// Cap returns the total number of objects owned by the pool, in use or free.
//
func (p *Pool[T]) Cap() int { return len(p.slots) }
