package condlock

import (
	"context"
	"fmt"
	"time"
)

// Guard represents exclusive ownership of a Mutex's value. Obtain one from
// Lock, TryLock or a LockWhen variant; release it exactly once with Unlock,
// normally via defer. A Guard is a unique capability: do not copy it and do
// not share it across goroutines.
type Guard[T any] struct {
	m        *Mutex[T]
	released bool
}

// Value returns the protected value. The pointer must not be used after
// Unlock.
func (g *Guard[T]) Value() *T {
	if g.released {
		panic("condlock: Value on released Guard")
	}
	return &g.m.data
}

// Unlock releases the Guard and wakes every waiter so each can recheck its
// condition. Unlocking twice panics.
func (g *Guard[T]) Unlock() {
	if g.released {
		panic("condlock: Unlock of released Guard")
	}
	g.released = true
	g.m.broadcast()
	g.m.mu.Unlock()
}

// AwaitWhen releases the lock until cond holds for the value, then returns
// with the lock held again. The Guard stays valid throughout; from the
// caller's perspective ownership is never given up.
//
// Entering the wait wakes the other waiters first: the caller may have
// mutated the value since acquiring the Guard, and they need a chance to
// see that.
func (g *Guard[T]) AwaitWhen(cond func(*T) bool) {
	_ = g.AwaitWhenContext(context.Background(), cond)
}

// AwaitWhenContext is AwaitWhen bounded by ctx. When ctx ends first it
// returns ctx.Err(); the lock is held again and the Guard remains valid
// either way.
func (g *Guard[T]) AwaitWhenContext(ctx context.Context, cond func(*T) bool) error {
	if g.released {
		panic("condlock: AwaitWhenContext on released Guard")
	}
	if cond(&g.m.data) {
		return nil
	}
	g.m.broadcast()
	for !cond(&g.m.data) {
		if err := g.m.wait(ctx); err != nil {
			if cond(&g.m.data) {
				return nil
			}
			return err
		}
	}
	return nil
}

// AwaitWhenTimeout is AwaitWhen bounded by a duration. On expiry it returns
// ErrTimeout; the lock is held again and the Guard remains valid.
func (g *Guard[T]) AwaitWhenTimeout(cond func(*T) bool, d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return g.AwaitWhenContext(ctx, cond)
}

// String renders the protected value. The Guard holds the lock, so unlike
// Mutex.String this never needs a placeholder.
func (g *Guard[T]) String() string {
	return fmt.Sprint(*g.Value())
}
