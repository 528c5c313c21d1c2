package xylock

import "fmt"

// Guard represents exclusive ownership of a Mutex's value. Obtain one from
// Lock, TryLock or LockWhen; release it exactly once with Unlock, normally
// via defer. A Guard is a unique capability: do not copy it and do not share
// it across goroutines.
//
// If the holding goroutine panics, a deferred Unlock still releases the lock
// and the panic propagates. A Guard abandoned without Unlock leaves the lock
// held forever; that is a program fault, the lock is never poisoned.
type Guard[T any] struct {
	m        *Mutex[T]
	released bool
}

// Value returns the protected value. The pointer must not be used after
// Unlock.
func (g *Guard[T]) Value() *T {
	if g.released {
		panic("xylock: Value on released Guard")
	}
	return &g.m.data
}

// Unlock releases the Guard, running the hand-off protocol: if a parked
// waiter's condition holds for the current value, the lock moves directly to
// that waiter and is never observably free in between. Unlocking twice
// panics.
func (g *Guard[T]) Unlock() {
	if g.released {
		panic("xylock: Unlock of released Guard")
	}
	g.released = true
	g.m.release()
}

// AwaitWhen releases the lock until cond holds for the value, then returns
// with the lock held again. The Guard stays valid throughout; from the
// caller's perspective ownership is never given up. Like LockWhen, the wait
// is unbounded.
func (g *Guard[T]) AwaitWhen(cond func(*T) bool) {
	if g.released {
		panic("xylock: AwaitWhen on released Guard")
	}
	if cond(&g.m.data) {
		return
	}
	w := newWaiter(cond)
	g.m.reg.add(w)
	g.m.release()
	<-w.slot
}

// String renders the protected value. The Guard holds the lock, so unlike
// Mutex.String this never needs a placeholder.
func (g *Guard[T]) String() string {
	return fmt.Sprint(*g.Value())
}
