package xylock

import "sync"

// waiter is one parked LockWhen or AwaitWhen call: the condition it is
// waiting for and the one-shot rendezvous slot the release protocol moves
// the lock token into.
type waiter[T any] struct {
	cond func(*T) bool
	slot chan lockToken // capacity 1; receives the token at most once
}

func newWaiter[T any](cond func(*T) bool) *waiter[T] {
	return &waiter[T]{cond: cond, slot: make(chan lockToken, 1)}
}

// registry holds the waiters parked on one Mutex. It is guarded by its own
// mutex; the only nesting ever used is lock token first, registry mutex
// second, so the two locks cannot deadlock against each other.
type registry[T any] struct {
	mu     sync.Mutex
	nextID uint64
	parked map[uint64]*waiter[T]
}

func (r *registry[T]) add(w *waiter[T]) {
	r.mu.Lock()
	r.nextID++
	r.parked[r.nextID] = w
	r.mu.Unlock()
}

// match removes and returns the first parked waiter whose condition holds
// for data, or nil. Map iteration keeps the pick deliberately unordered:
// there is no FIFO guarantee among waiters. The caller must hold the lock
// token, which is what makes evaluating conditions against data safe here.
func (r *registry[T]) match(data *T) *waiter[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, w := range r.parked {
		if w.cond(data) {
			delete(r.parked, id)
			return w
		}
	}
	return nil
}

// size reports the number of parked waiters.
func (r *registry[T]) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.parked)
}
