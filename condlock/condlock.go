package condlock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Mutex is an exclusive lock around a value of type T whose acquisition can
// be gated by a condition over that value, using the broadcast/recheck
// strategy. Share a Mutex by pointer; never copy it. The zero value is not
// ready for use; construct via New.
type Mutex[T any] struct {
	mu    sync.Mutex
	bcast chan struct{} // closed and replaced on every release, under mu
	data  T             // guarded by mu
}

// New creates a Mutex protecting initial.
func New[T any](initial T) *Mutex[T] {
	return &Mutex[T]{
		bcast: make(chan struct{}),
		data:  initial,
	}
}

// Lock blocks until the lock is free and returns a Guard. Release it with
// Unlock, normally deferred.
func (m *Mutex[T]) Lock() *Guard[T] {
	m.mu.Lock()
	return &Guard[T]{m: m}
}

// TryLock acquires the lock only if it is free right now. It never blocks;
// the second result reports whether the Guard was acquired.
func (m *Mutex[T]) TryLock() (*Guard[T], bool) {
	if !m.mu.TryLock() {
		return nil, false
	}
	return &Guard[T]{m: m}, true
}

// LockWhen blocks until cond holds for the protected value and returns a
// Guard under which cond is true at the instant of return. The wait is
// unbounded; use LockWhenContext or LockWhenTimeout for a bound.
//
// cond must be a pure read of the value: no mutation, no blocking, no use of
// this Mutex.
func (m *Mutex[T]) LockWhen(cond func(*T) bool) *Guard[T] {
	m.mu.Lock()
	for !cond(&m.data) {
		m.wait(context.Background())
	}
	return &Guard[T]{m: m}
}

// LockWhenContext is LockWhen bounded by ctx. When ctx ends first it
// returns ctx.Err() and the lock is not held. A wake racing the deadline is
// resolved by one final check under the lock: if cond turned true, the
// acquisition succeeds.
func (m *Mutex[T]) LockWhenContext(ctx context.Context, cond func(*T) bool) (*Guard[T], error) {
	m.mu.Lock()
	for !cond(&m.data) {
		if err := m.wait(ctx); err != nil {
			if cond(&m.data) {
				break
			}
			m.mu.Unlock()
			return nil, err
		}
	}
	return &Guard[T]{m: m}, nil
}

// LockWhenTimeout is LockWhen bounded by a duration. On expiry it returns
// ErrTimeout and the lock is not held.
func (m *Mutex[T]) LockWhenTimeout(cond func(*T) bool, d time.Duration) (*Guard[T], error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return m.LockWhenContext(ctx, cond)
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

// ErrTimeout is returned by bounded waits whose deadline expired.
var ErrTimeout = context.DeadlineExceeded

// ErrCanceled is returned by context-bounded waits whose context was
// canceled.
var ErrCanceled = context.Canceled

// IsWaitError reports whether err is a bounded wait ending without the lock
// (timeout or cancellation).
func IsWaitError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
