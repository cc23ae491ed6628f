package rtmap

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the map calls them
// inline on its failure paths. Successful borrows never fire a hook.
type Hooks interface {
	// A borrow request was denied because the entry is already borrowed.
	// op ∈ {"borrow", "borrow_mut", "or_insert"}; holder is the recorded
	// site of the current holder ("" unless origin tracking is on).
	BorrowConflict(key any, op, holder string)

	// The shared borrow counter for an entry reached its ceiling.
	// The map panics right after firing this.
	CounterOverflow(key any)

	// A structural operation hit a live borrow on the affected entry.
	// op ∈ {"insert", "remove", "get_mut", "raw", "into_inner"}.
	// The map panics right after firing this.
	StructuralViolation(op string, key any)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) BorrowConflict(any, string, string) {}
func (NopHooks) CounterOverflow(any)                {}
func (NopHooks) StructuralViolation(string, any)    {}
