package xylock

import (
	"fmt"
)

// lockToken marks ownership of the protected value. Exactly one exists per
// Mutex: it sits in the free channel while the lock is available, and is
// moved into a waiter's rendezvous slot during a hand-off.
type lockToken struct{}

// Mutex is an exclusive lock around a value of type T whose acquisition can
// be gated by a condition over that value. Share a Mutex by pointer; never
// copy it. The zero value is not ready for use; construct via New.
type Mutex[T any] struct {
	free chan lockToken // capacity 1; holds the token while the lock is free
	data T              // accessed only by the goroutine holding the token
	reg  registry[T]
}

// New creates a Mutex protecting initial.
func New[T any](initial T) *Mutex[T] {
	m := &Mutex[T]{
		free: make(chan lockToken, 1),
		data: initial,
	}
	m.reg.parked = make(map[uint64]*waiter[T])
	m.free <- lockToken{}
	return m
}

// Lock blocks until the lock is free and returns a Guard. Release it with
// Unlock, normally deferred.
func (m *Mutex[T]) Lock() *Guard[T] {
	<-m.free
	return &Guard[T]{m: m}
}

// TryLock acquires the lock only if it is free right now. It never blocks
// and never interacts with parked waiters; the second result reports whether
// the Guard was acquired.
func (m *Mutex[T]) TryLock() (*Guard[T], bool) {
	select {
	case <-m.free:
		return &Guard[T]{m: m}, true
	default:
		return nil, false
	}
}

// LockWhen blocks until cond holds for the protected value and returns a
// Guard under which cond is true at the instant of return.
//
// If cond already holds, LockWhen is an ordinary acquisition. Otherwise the
// calling goroutine parks until a release finds cond true and hands the lock
// over directly; the wait is unbounded and consumes no CPU while parked.
//
// cond must be a pure read of the value: no mutation, no blocking, no use of
// this Mutex. It runs on releasing goroutines as well as this one.
func (m *Mutex[T]) LockWhen(cond func(*T) bool) *Guard[T] {
	<-m.free
	if cond(&m.data) {
		return &Guard[T]{m: m}
	}
	// Register while the token is still held so no release can slip by
	// between our check and the park, then let the release protocol choose
	// a successor.
	w := newWaiter(cond)
	m.reg.add(w)
	m.release()
	<-w.slot
	return &Guard[T]{m: m}
}

// release passes the lock to the first parked waiter whose condition holds
// against the current value, or makes it free if none matches. The caller
// must own the token and must not touch the value afterward.
func (m *Mutex[T]) release() {
	if w := m.reg.match(&m.data); w != nil {
		w.slot <- lockToken{}
		return
	}
	m.free <- lockToken{}
}

// String renders the protected value without ever blocking: if the lock is
// held elsewhere it reports a placeholder instead.
func (m *Mutex[T]) String() string {
	g, ok := m.TryLock()
	if !ok {
		return "Mutex(<locked>)"
	}
	defer g.Unlock()
	return fmt.Sprintf("Mutex(%v)", m.data)
}
