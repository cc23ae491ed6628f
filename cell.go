package rtmap

import "math"

// mutBorrow marks a cell held by exactly one exclusive borrow. Shared
// borrows count upward from zero.
const mutBorrow int64 = -1

// Cell pairs one owned value with its runtime borrow state: any number
// of shared borrows, or exactly one exclusive borrow, never both.
// Admission is a single compare-and-branch; nothing blocks or retries.
//
// A Cell belongs to a single goroutine (or one externally synchronized
// owner). The zero state is unborrowed.
type Cell[V any] struct {
	value V
	state int64

	// origin is the call site of the live exclusive borrow (or the most
	// recent shared one) when the owning map tracks origins. Cells used
	// standalone never record one.
	origin string
}

// NewCell wraps v in an unborrowed cell.
func NewCell[V any](v V) *Cell[V] { return &Cell[V]{value: v} }

// Borrow takes a shared borrow and panics with
// ErrAlreadyBorrowedMutably if an exclusive borrow is live.
func (c *Cell[V]) Borrow() *Ref[V] {
	r, err := c.TryBorrow()
	if err != nil {
		panic(err)
	}
	return r
}

// TryBorrow is the non-panicking Borrow. The only conflict it can
// report is ErrAlreadyBorrowedMutably.
func (c *Cell[V]) TryBorrow() (*Ref[V], error) {
	if err := c.tryShared(); err != nil {
		if err == ErrBorrowCounterOverflow {
			panic(err) // counter exhaustion is a logic error, not a conflict
		}
		return nil, err
	}
	return &Ref[V]{cell: c}, nil
}

// BorrowMut takes the exclusive borrow. It panics with
// ErrAlreadyBorrowedMutably or ErrAlreadyBorrowed if any borrow is live.
func (c *Cell[V]) BorrowMut() *RefMut[V] {
	r, err := c.TryBorrowMut()
	if err != nil {
		panic(err)
	}
	return r
}

// TryBorrowMut is the non-panicking BorrowMut.
func (c *Cell[V]) TryBorrowMut() (*RefMut[V], error) {
	if err := c.tryMut(); err != nil {
		return nil, err
	}
	return &RefMut[V]{cell: c}, nil
}

// IsBorrowed reports whether any borrow, shared or exclusive, is live.
func (c *Cell[V]) IsBorrowed() bool { return c.state != 0 }

// IsBorrowedMutably reports whether an exclusive borrow is live.
func (c *Cell[V]) IsBorrowedMutably() bool { return c.state == mutBorrow }

// GetMut returns a direct pointer to the value, bypassing guard
// bookkeeping. It is meant for owners that have handed out no guards
// and panics if any borrow is live.
func (c *Cell[V]) GetMut() *V {
	if c.state != 0 {
		panic(c.borrowErr())
	}
	return &c.value
}

// IntoInner yields the value and leaves the cell empty. It panics if
// any borrow is live. The cell must not be used afterwards.
func (c *Cell[V]) IntoInner() V {
	if c.state != 0 {
		panic(c.borrowErr())
	}
	v := c.value
	var zero V
	c.value = zero
	return v
}

func (c *Cell[V]) tryShared() error {
	switch {
	case c.state == mutBorrow:
		return ErrAlreadyBorrowedMutably
	case c.state == math.MaxInt64:
		return ErrBorrowCounterOverflow
	}
	c.state++
	return nil
}

func (c *Cell[V]) tryMut() error {
	switch {
	case c.state == mutBorrow:
		return ErrAlreadyBorrowedMutably
	case c.state > 0:
		return ErrAlreadyBorrowed
	}
	c.state = mutBorrow
	return nil
}

// releaseShared and releaseMut are called exactly once per guard, by
// Release. The checks catch state corrupted outside the guard protocol.
func (c *Cell[V]) releaseShared() {
	if c.state <= 0 {
		panic("rtmap: shared release of a cell that is not shared-borrowed")
	}
	c.state--
}

func (c *Cell[V]) releaseMut() {
	if c.state != mutBorrow {
		panic("rtmap: exclusive release of a cell that is not exclusively borrowed")
	}
	c.state = 0
}

// borrowErr classifies the live borrow for error reporting. Callers
// ensure state != 0.
func (c *Cell[V]) borrowErr() error {
	if c.state == mutBorrow {
		return ErrAlreadyBorrowedMutably
	}
	return ErrAlreadyBorrowed
}
