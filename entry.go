package rtmap

import "github.com/unkn0wn-root/rtmap/internal/origin"

// Entry is a view of one key's slot, occupied or not. Obtain one with
// Map.Entry; it stays valid as long as the map does.
type Entry[K comparable, V any] struct {
	m   *Map[K, V]
	key K
}

// Entry returns a view of key's slot for insert-if-absent flows.
func (m *Map[K, V]) Entry(key K) Entry[K, V] {
	return Entry[K, V]{m: m, key: key}
}

// OrInsert ensures the slot holds a value, inserting value if it is
// empty, and returns the entry exclusively borrowed. It panics if an
// existing entry is already borrowed.
func (e Entry[K, V]) OrInsert(value V) *RefMut[V] {
	return e.orInsert(func() V { return value })
}

// OrInsertWith is OrInsert with a lazily computed value; fn runs only
// when the slot is empty.
func (e Entry[K, V]) OrInsertWith(fn func() V) *RefMut[V] {
	return e.orInsert(fn)
}

func (e Entry[K, V]) orInsert(fn func() V) *RefMut[V] {
	m := e.m
	c, ok := m.cells[e.key]
	if !ok {
		c = NewCell(fn())
		m.cells[e.key] = c
	}
	if err := c.tryMut(); err != nil {
		err = m.deny("or_insert", e.key, c, err)
		m.log.Error("fatal borrow conflict", Fields{"op": "or_insert", "key": e.key, "err": err})
		panic(&BorrowError{Op: "or_insert", Key: e.key, Err: err})
	}
	if m.trackOrigins {
		c.origin = origin.Capture(2)
	}
	return &RefMut[V]{cell: c}
}
