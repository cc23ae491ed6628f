// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/rtmap"
//	"github.com/unkn0wn-root/rtmap/hooks/async"
//	"github.com/unkn0wn-root/rtmap/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    ConflictEvery: 10, // sample logs: ~every 10th conflict
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	m := rtmap.NewWith[string, User](rtmap.Options{
//	    Hooks:        hooks, // or `raw` if you don't want async
//	    TrackOrigins: true,
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/rtmap"
)

type Hooks struct {
	inner rtmap.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ rtmap.Hooks = (*Hooks)(nil)

func New(inner rtmap.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) BorrowConflict(key any, op, holder string) {
	h.try(func() { h.inner.BorrowConflict(key, op, holder) })
}

func (h *Hooks) CounterOverflow(key any) {
	h.try(func() { h.inner.CounterOverflow(key) })
}

func (h *Hooks) StructuralViolation(op string, key any) {
	h.try(func() { h.inner.StructuralViolation(op, key) })
}
