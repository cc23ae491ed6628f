package rtmap

// RefMut is the live exclusive borrow of one cell's value: full
// read-write access, no other borrow can coexist with it. Like Ref it
// must be released exactly once and must not be copied; there is no
// Clone, exclusivity is the point.
type RefMut[V any] struct {
	cell     *Cell[V]
	released bool
}

// Value returns the borrowed value for reading and writing. It panics
// after Release.
func (r *RefMut[V]) Value() *V {
	if r.released {
		panic("rtmap: use of released RefMut")
	}
	return &r.cell.value
}

// Set replaces the borrowed value.
func (r *RefMut[V]) Set(v V) { *r.Value() = v }

// Release returns the borrow to the cell. Further calls are no-ops.
func (r *RefMut[V]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.cell.releaseMut()
}
