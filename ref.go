package rtmap

// Ref is a live shared borrow of one cell's value. It is created only
// by a successful borrow and must be released exactly once; Release is
// idempotent, so a deferred call is always safe.
//
// A Ref must not be copied: the release obligation belongs to one
// guard. Use Clone to take an additional shared borrow.
type Ref[V any] struct {
	cell     *Cell[V]
	released bool
}

// Value returns the borrowed value. The caller must not write through
// the pointer; it panics after Release.
func (r *Ref[V]) Value() *V {
	if r.released {
		panic("rtmap: use of released Ref")
	}
	return &r.cell.value
}

// Clone takes an additional shared borrow on the same cell. The clone
// carries its own release obligation, independent of r's.
func (r *Ref[V]) Clone() *Ref[V] {
	if r.released {
		panic("rtmap: use of released Ref")
	}
	if err := r.cell.tryShared(); err != nil {
		// r holds a shared borrow, so only the counter ceiling can deny
		panic(err)
	}
	return &Ref[V]{cell: r.cell}
}

// Release returns the borrow to the cell. Further calls are no-ops.
func (r *Ref[V]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.cell.releaseShared()
}
