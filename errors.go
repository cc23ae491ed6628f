package rtmap

import (
	"errors"
	"fmt"
)

var (
	// ErrValueNotFound reports that the requested key has no entry.
	ErrValueNotFound = errors.New("rtmap: value not found")

	// ErrAlreadyBorrowed denies an exclusive request while shared
	// borrows are live on the entry.
	ErrAlreadyBorrowed = errors.New("rtmap: value already borrowed")

	// ErrAlreadyBorrowedMutably denies any request while an exclusive
	// borrow is live on the entry.
	ErrAlreadyBorrowedMutably = errors.New("rtmap: value already borrowed mutably")

	// ErrBorrowCounterOverflow reports that the shared borrow count for
	// one entry reached the representable ceiling. Always fatal, never
	// returned from the try variants.
	ErrBorrowCounterOverflow = errors.New("rtmap: shared borrow counter overflow")
)

// BorrowError carries the operation and key of a failed map or vector
// access. Fatal entry points panic with *BorrowError so a recovered
// value stays inspectable via errors.Is/errors.As.
type BorrowError struct {
	Op  string // "borrow", "borrow_mut", "insert", "remove", ...
	Key any
	Err error
}

func (e *BorrowError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Op, e.Key, e.Err)
}

func (e *BorrowError) Unwrap() error { return e.Err }
