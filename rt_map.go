package rtmap

import (
	"errors"

	"github.com/unkn0wn-root/rtmap/internal/origin"
)

// Options tune a Map. The zero value is usable: no capacity hint, no
// logging, no hooks, no origin tracking.
type Options struct {
	Capacity int    // initial sizing hint
	Logger   Logger // if nil, NopLogger is used
	Hooks    Hooks  // if nil, NopHooks is used

	// TrackOrigins records the call site of every successful map-level
	// borrow and reports it as the holder on later conflicts (exact for
	// an exclusive holder, most recent for shared ones). Costs one
	// runtime.Caller per borrow; default off.
	TrackOrigins bool
}

// Map is a keyed container whose entries are independently
// borrow-checked at runtime: per key, any number of shared borrows or
// exactly one exclusive borrow. Entries never contend across keys.
//
// A Map belongs to a single goroutine (or one externally synchronized
// owner); the borrow counters are plain integers, not atomics.
type Map[K comparable, V any] struct {
	cells        map[K]*Cell[V]
	capHint      int
	log          Logger
	hooks        Hooks
	trackOrigins bool
}

// New returns an empty map with default options.
func New[K comparable, V any]() *Map[K, V] {
	return NewWith[K, V](Options{})
}

// WithCapacity returns an empty map sized for n entries.
func WithCapacity[K comparable, V any](n int) *Map[K, V] {
	return NewWith[K, V](Options{Capacity: n})
}

// NewWith returns an empty map configured by opts.
func NewWith[K comparable, V any](opts Options) *Map[K, V] {
	m := &Map[K, V]{
		capHint:      max(opts.Capacity, 0),
		trackOrigins: opts.TrackOrigins,
	}
	m.log = coalesce[Logger](opts.Logger, NopLogger{})
	m.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	m.cells = make(map[K]*Cell[V], m.capHint)
	return m
}

// Insert stores value under key in a fresh cell and returns the value
// it displaced, if any. It panics if the displaced entry is borrowed,
// since a guard still references it.
func (m *Map[K, V]) Insert(key K, value V) (prev V, replaced bool) {
	if c, ok := m.cells[key]; ok {
		if c.state != 0 {
			m.violation("insert", key, c)
		}
		prev, replaced = c.value, true
	}
	m.cells[key] = NewCell(value)
	return prev, replaced
}

// Remove deletes key's entry and returns its value. It panics if the
// entry is borrowed.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	c, ok := m.cells[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.state != 0 {
		m.violation("remove", key, c)
	}
	delete(m.cells, key)
	return c.value, true
}

// Borrow takes a shared borrow of key's value. Absence is an ordinary
// outcome (ok == false); a live exclusive borrow on the entry is a
// logic error and panics with *BorrowError.
func (m *Map[K, V]) Borrow(key K) (*Ref[V], bool) {
	r, err := m.sharedRef(key)
	if err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return nil, false
		}
		m.log.Error("fatal borrow conflict", Fields{"op": "borrow", "key": key, "err": err})
		panic(&BorrowError{Op: "borrow", Key: key, Err: err})
	}
	if m.trackOrigins {
		r.cell.origin = origin.Capture(1)
	}
	return r, true
}

// TryBorrow is the non-panicking Borrow: ErrValueNotFound for an
// absent key, ErrAlreadyBorrowedMutably for a conflict.
func (m *Map[K, V]) TryBorrow(key K) (*Ref[V], error) {
	r, err := m.sharedRef(key)
	if err != nil {
		return nil, err
	}
	if m.trackOrigins {
		r.cell.origin = origin.Capture(1)
	}
	return r, nil
}

// BorrowMut takes the exclusive borrow of key's value. Absence is an
// ordinary outcome (ok == false); any live borrow on the entry panics
// with *BorrowError.
func (m *Map[K, V]) BorrowMut(key K) (*RefMut[V], bool) {
	r, err := m.exclusiveRef(key)
	if err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return nil, false
		}
		m.log.Error("fatal borrow conflict", Fields{"op": "borrow_mut", "key": key, "err": err})
		panic(&BorrowError{Op: "borrow_mut", Key: key, Err: err})
	}
	if m.trackOrigins {
		r.cell.origin = origin.Capture(1)
	}
	return r, true
}

// TryBorrowMut is the non-panicking BorrowMut: ErrValueNotFound for an
// absent key, ErrAlreadyBorrowed while shared borrows are live,
// ErrAlreadyBorrowedMutably while the exclusive borrow is live.
func (m *Map[K, V]) TryBorrowMut(key K) (*RefMut[V], error) {
	r, err := m.exclusiveRef(key)
	if err != nil {
		return nil, err
	}
	if m.trackOrigins {
		r.cell.origin = origin.Capture(1)
	}
	return r, nil
}

// GetMut returns a direct pointer to key's value, bypassing guard
// bookkeeping. It panics if the entry is borrowed.
func (m *Map[K, V]) GetMut(key K) (*V, bool) {
	c, ok := m.cells[key]
	if !ok {
		return nil, false
	}
	if c.state != 0 {
		m.violation("get_mut", key, c)
	}
	return &c.value, true
}

// ContainsKey reports whether key has an entry. Pure read, legal
// regardless of outstanding guards.
func (m *Map[K, V]) ContainsKey(key K) bool {
	_, ok := m.cells[key]
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.cells) }

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool { return len(m.cells) == 0 }

// Capacity returns the larger of the configured capacity hint and the
// current length; Go maps do not expose their true capacity.
func (m *Map[K, V]) Capacity() int {
	return max(m.capHint, len(m.cells))
}

// Raw exposes the underlying cells, bypassing per-entry tracking. It
// panics if any borrow is live anywhere in the map. The precondition
// is checked at call time only; the caller owns what happens after.
func (m *Map[K, V]) Raw() map[K]*Cell[V] {
	m.requireUnborrowed("raw")
	return m.cells
}

// IntoInner consumes the map and yields the plain key-to-value
// mapping. It panics if any borrow is live. The map must not be used
// afterwards.
func (m *Map[K, V]) IntoInner() map[K]V {
	m.requireUnborrowed("into_inner")
	out := make(map[K]V, len(m.cells))
	for k, c := range m.cells {
		out[k] = c.value
	}
	m.cells = nil
	return out
}

func (m *Map[K, V]) sharedRef(key K) (*Ref[V], error) {
	c, ok := m.cells[key]
	if !ok {
		return nil, ErrValueNotFound
	}
	if err := c.tryShared(); err != nil {
		return nil, m.deny("borrow", key, c, err)
	}
	return &Ref[V]{cell: c}, nil
}

func (m *Map[K, V]) exclusiveRef(key K) (*RefMut[V], error) {
	c, ok := m.cells[key]
	if !ok {
		return nil, ErrValueNotFound
	}
	if err := c.tryMut(); err != nil {
		return nil, m.deny("borrow_mut", key, c, err)
	}
	return &RefMut[V]{cell: c}, nil
}

// deny funnels a denied admission: overflow is fatal on every path,
// conflicts are reported and handed back to the caller.
func (m *Map[K, V]) deny(op string, key K, c *Cell[V], err error) error {
	if errors.Is(err, ErrBorrowCounterOverflow) {
		m.hooks.CounterOverflow(key)
		m.log.Error("borrow counter overflow", Fields{"op": op, "key": key})
		panic(&BorrowError{Op: op, Key: key, Err: err})
	}
	m.hooks.BorrowConflict(key, op, c.origin)
	m.log.Debug("borrow conflict", Fields{"op": op, "key": key, "holder": c.origin})
	return err
}

// violation reports a structural operation that hit a live borrow on
// key and panics: the operation would invalidate storage a guard still
// references.
func (m *Map[K, V]) violation(op string, key K, c *Cell[V]) {
	err := c.borrowErr()
	m.hooks.StructuralViolation(op, key)
	m.log.Error("structural violation", Fields{"op": op, "key": key, "holder": c.origin, "err": err})
	panic(&BorrowError{Op: op, Key: key, Err: err})
}

func (m *Map[K, V]) requireUnborrowed(op string) {
	for k, c := range m.cells {
		if c.state != 0 {
			m.violation(op, k, c)
		}
	}
}
