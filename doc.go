// Package rtmap implements a keyed container with per-entry runtime
// borrow checking: for each key, any number of shared borrows or
// exactly one exclusive borrow, enforced by a plain counter in the
// entry's cell. Distinct keys never contend, which is the point - the
// owner gets checked mutable access to several entries at once.
//
// Components:
//   - Cell[V]: one value plus its borrow counter; usable standalone.
//   - Ref[V] / RefMut[V]: guards returned by borrows. Release returns
//     the borrow; guards must not be copied and are released exactly
//     once (Release is idempotent, so defer is safe).
//   - Map[K, V]: keys to cells; structural ops (Insert, Remove) require
//     the affected entry to be unborrowed.
//
// Borrow pattern:
//
//	m := rtmap.New[string, int]()
//	m.Insert("a", 1)
//
//	w, _ := m.BorrowMut("a")
//	*w.Value() += 10
//	w.Release()
//
//	r, _ := m.Borrow("a") // many shared borrows may coexist
//	fmt.Println(*r.Value())
//	r.Release()
//
// Fatal vs non-fatal: Borrow/BorrowMut treat a conflict as a logic
// error and panic with *BorrowError; TryBorrow/TryBorrowMut return it
// (ErrAlreadyBorrowed, ErrAlreadyBorrowedMutably). Absence is never a
// failure on either pair. The whole container is single-owner: nothing
// here is goroutine-safe.
package rtmap
