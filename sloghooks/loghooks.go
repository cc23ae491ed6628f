package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/rtmap"
)

type Options struct {
	// Sampling to avoid floods from try-borrow retry loops;
	// 0/1 = log all.
	ConflictEvery uint64
	// Optional key formatter, e.g. to redact sensitive keys.
	// Defaults to fmt.Sprint.
	FormatKey func(any) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	conflictCtr atomic.Uint64
}

var _ rtmap.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) format(key any) string {
	if h.opts.FormatKey != nil {
		return h.opts.FormatKey(key)
	}
	return fmt.Sprint(key)
}

// HashKey is a FormatKey for sensitive keys: a SHA-256 prefix of the
// key's string form.
func HashKey(key any) string {
	sum := sha256.Sum256([]byte(fmt.Sprint(key)))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) BorrowConflict(key any, op, holder string) {
	if h.l == nil || !sample(h.opts.ConflictEvery, &h.conflictCtr) {
		return
	}
	h.l.Debug("rtmap.borrow_conflict",
		"key", h.format(key),
		"op", op,
		"holder", holder)
}

func (h *Hooks) CounterOverflow(key any) {
	if h.l == nil {
		return
	}
	h.l.Error("rtmap.counter_overflow",
		"key", h.format(key))
}

func (h *Hooks) StructuralViolation(op string, key any) {
	if h.l == nil {
		return
	}
	h.l.Error("rtmap.structural_violation",
		"op", op,
		"key", h.format(key))
}
