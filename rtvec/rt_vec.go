// Package rtvec is the index-keyed companion of rtmap: a slice of
// borrow-checked cells with the same guard and conflict semantics,
// where an out-of-range index plays the role of an absent key.
//
// Like rtmap, everything here is single-owner; nothing is
// goroutine-safe.
package rtvec

import (
	"fmt"

	"github.com/unkn0wn-root/rtmap"
)

// Vec tracks one borrow-checked cell per index. Structural ops
// (Insert, Remove, SwapRemove) shift indices the way a plain slice
// would; live guards stay valid across shifts because they reference
// cells, not positions.
type Vec[V any] struct {
	cells []*rtmap.Cell[V]
}

// New returns an empty vector.
func New[V any]() *Vec[V] { return &Vec[V]{} }

// WithCapacity returns an empty vector sized for n entries.
func WithCapacity[V any](n int) *Vec[V] {
	return &Vec[V]{cells: make([]*rtmap.Cell[V], 0, max(n, 0))}
}

// Push appends value.
func (v *Vec[V]) Push(value V) {
	v.cells = append(v.cells, rtmap.NewCell(value))
}

// Insert places value at index i, shifting later entries right. It
// panics if i is outside [0, Len()].
func (v *Vec[V]) Insert(i int, value V) {
	if i < 0 || i > len(v.cells) {
		panic(fmt.Sprintf("rtvec: insert index %d out of range [0:%d]", i, len(v.cells)))
	}
	v.cells = append(v.cells, nil)
	copy(v.cells[i+1:], v.cells[i:])
	v.cells[i] = rtmap.NewCell(value)
}

// Remove deletes the entry at index i, shifting later entries left,
// and returns its value. It panics if i is out of range or the entry
// is borrowed.
func (v *Vec[V]) Remove(i int) V {
	v.checkIndex("remove", i)
	v.checkUnborrowed("remove", i)
	val := v.cells[i].IntoInner()
	copy(v.cells[i:], v.cells[i+1:])
	v.cells[len(v.cells)-1] = nil
	v.cells = v.cells[:len(v.cells)-1]
	return val
}

// SwapRemove deletes the entry at index i in O(1) by moving the last
// entry into its place, and returns its value. Only the removed entry
// must be unborrowed; a guard on the moved entry stays valid.
func (v *Vec[V]) SwapRemove(i int) V {
	v.checkIndex("swap_remove", i)
	v.checkUnborrowed("swap_remove", i)
	val := v.cells[i].IntoInner()
	last := len(v.cells) - 1
	v.cells[i] = v.cells[last]
	v.cells[last] = nil
	v.cells = v.cells[:last]
	return val
}

// Borrow takes a shared borrow of the value at index i. An
// out-of-range index is an ordinary outcome (ok == false); a live
// exclusive borrow panics with *rtmap.BorrowError.
func (v *Vec[V]) Borrow(i int) (*rtmap.Ref[V], bool) {
	if i < 0 || i >= len(v.cells) {
		return nil, false
	}
	r, err := v.cells[i].TryBorrow()
	if err != nil {
		panic(&rtmap.BorrowError{Op: "borrow", Key: i, Err: err})
	}
	return r, true
}

// TryBorrow is the non-panicking Borrow: rtmap.ErrValueNotFound for an
// out-of-range index, rtmap.ErrAlreadyBorrowedMutably for a conflict.
func (v *Vec[V]) TryBorrow(i int) (*rtmap.Ref[V], error) {
	if i < 0 || i >= len(v.cells) {
		return nil, rtmap.ErrValueNotFound
	}
	return v.cells[i].TryBorrow()
}

// BorrowMut takes the exclusive borrow of the value at index i. An
// out-of-range index is an ordinary outcome (ok == false); any live
// borrow panics with *rtmap.BorrowError.
func (v *Vec[V]) BorrowMut(i int) (*rtmap.RefMut[V], bool) {
	if i < 0 || i >= len(v.cells) {
		return nil, false
	}
	r, err := v.cells[i].TryBorrowMut()
	if err != nil {
		panic(&rtmap.BorrowError{Op: "borrow_mut", Key: i, Err: err})
	}
	return r, true
}

// TryBorrowMut is the non-panicking BorrowMut.
func (v *Vec[V]) TryBorrowMut(i int) (*rtmap.RefMut[V], error) {
	if i < 0 || i >= len(v.cells) {
		return nil, rtmap.ErrValueNotFound
	}
	return v.cells[i].TryBorrowMut()
}

// GetMut returns a direct pointer to the value at index i, bypassing
// guard bookkeeping. It panics if the entry is borrowed.
func (v *Vec[V]) GetMut(i int) (*V, bool) {
	if i < 0 || i >= len(v.cells) {
		return nil, false
	}
	c := v.cells[i]
	if c.IsBorrowed() {
		panic(&rtmap.BorrowError{Op: "get_mut", Key: i, Err: borrowErrOf(c)})
	}
	return c.GetMut(), true
}

// Len returns the number of entries.
func (v *Vec[V]) Len() int { return len(v.cells) }

// IsEmpty reports whether the vector has no entries.
func (v *Vec[V]) IsEmpty() bool { return len(v.cells) == 0 }

// Capacity returns the capacity of the underlying slice.
func (v *Vec[V]) Capacity() int { return cap(v.cells) }

// Raw exposes the underlying cells, bypassing per-entry tracking. It
// panics if any borrow is live; the precondition is checked at call
// time only.
func (v *Vec[V]) Raw() []*rtmap.Cell[V] {
	v.requireUnborrowed("raw")
	return v.cells
}

// IntoInner consumes the vector and yields the plain values. It panics
// if any borrow is live. The vector must not be used afterwards.
func (v *Vec[V]) IntoInner() []V {
	v.requireUnborrowed("into_inner")
	out := make([]V, len(v.cells))
	for i, c := range v.cells {
		out[i] = c.IntoInner()
	}
	v.cells = nil
	return out
}

func (v *Vec[V]) checkIndex(op string, i int) {
	if i < 0 || i >= len(v.cells) {
		panic(fmt.Sprintf("rtvec: %s index %d out of range [0:%d)", op, i, len(v.cells)))
	}
}

func (v *Vec[V]) checkUnborrowed(op string, i int) {
	if c := v.cells[i]; c.IsBorrowed() {
		panic(&rtmap.BorrowError{Op: op, Key: i, Err: borrowErrOf(c)})
	}
}

func (v *Vec[V]) requireUnborrowed(op string) {
	for i, c := range v.cells {
		if c.IsBorrowed() {
			panic(&rtmap.BorrowError{Op: op, Key: i, Err: borrowErrOf(c)})
		}
	}
}

func borrowErrOf[V any](c *rtmap.Cell[V]) error {
	if c.IsBorrowedMutably() {
		return rtmap.ErrAlreadyBorrowedMutably
	}
	return rtmap.ErrAlreadyBorrowed
}
