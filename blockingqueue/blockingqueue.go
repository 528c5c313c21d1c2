package blockingqueue

import (
	"context"
	"errors"
	"time"

	"github.com/xyhelper/xylock/condlock"
)

// queueState is the FIFO storage guarded by the lock: the element slice plus
// the presence set used when de-duplication is enabled.
type queueState[T comparable] struct {
	data  []T
	set   map[T]struct{} // only used when dedup is true
	dedup bool
}

func (s *queueState[T]) enqueue(v T) bool {
	if s.dedup {
		if _, exists := s.set[v]; exists {
			return false
		}
		s.set[v] = struct{}{}
	}
	s.data = append(s.data, v)
	return true
}

func (s *queueState[T]) dequeue() (T, bool) {
	var zero T
	if len(s.data) == 0 {
		return zero, false
	}
	v := s.data[0]
	// Avoid O(n) element moves by reslicing; let GC reclaim older head when needed.
	s.data = s.data[1:]
	if s.dedup {
		delete(s.set, v)
	}
	return v, true
}

// Queue is a blocking, concurrency-safe FIFO built on the predicate-gated
// lock in condlock, with optional de-duplication. When de-duplication is
// enabled, Put skips values already present; after removal the value can be
// added again.
//
// All methods are safe for concurrent use by multiple goroutines. Waiting
// consumers block on a "queue is non-empty" condition rather than a
// hand-rolled condition-variable loop; service order among blocked consumers
// is unspecified.
type Queue[T comparable] struct {
	lock *condlock.Mutex[queueState[T]]
}

// New creates a new blocking queue.
func New[T comparable](dedup bool) *Queue[T] {
	s := queueState[T]{dedup: dedup}
	if dedup {
		s.set = make(map[T]struct{})
	}
	return &Queue[T]{lock: condlock.New(s)}
}

// NewWithCapacity creates a new blocking queue with initial capacity.
func NewWithCapacity[T comparable](dedup bool, capacity int) *Queue[T] {
	if capacity < 0 {
		capacity = 0
	}
	s := queueState[T]{data: make([]T, 0, capacity), dedup: dedup}
	if dedup {
		s.set = make(map[T]struct{}, capacity)
	}
	return &Queue[T]{lock: condlock.New(s)}
}

// Put appends v to the tail. Returns true if the value was added, or false
// when de-duplication is enabled and v is already present. Releasing the
// lock wakes waiting consumers; those whose condition is still unmet simply
// re-wait.
func (q *Queue[T]) Put(v T) bool {
	g := q.lock.Lock()
	defer g.Unlock()
	return g.Value().enqueue(v)
}

// PutMany enqueues items and returns the count actually added.
func (q *Queue[T]) PutMany(items ...T) int {
	g := q.lock.Lock()
	defer g.Unlock()
	added := 0
	for _, v := range items {
		if g.Value().enqueue(v) {
			added++
		}
	}
	return added
}

// TryTake removes and returns the head value without blocking.
// ok is false if the queue is empty.
func (q *Queue[T]) TryTake() (v T, ok bool) {
	g := q.lock.Lock()
	defer g.Unlock()
	return g.Value().dequeue()
}

// Take blocks until an element is available or ctx is done. On success
// returns (value, nil). On cancellation or expiry returns the zero value and
// ctx.Err().
func (q *Queue[T]) Take(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, err := q.lock.LockWhenContext(ctx, func(s *queueState[T]) bool {
		return len(s.data) > 0
	})
	if err != nil {
		var zero T
		return zero, err
	}
	defer g.Unlock()
	v, _ := g.Value().dequeue()
	return v, nil
}

// TakeTimeout is Take bounded by a duration instead of a context.
func (q *Queue[T]) TakeTimeout(d time.Duration) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return q.Take(ctx)
}

// TakeN blocks until at least n elements are queued, then removes and
// returns the first n in order. n <= 0 returns an empty slice immediately.
func (q *Queue[T]) TakeN(ctx context.Context, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	g, err := q.lock.LockWhenContext(ctx, func(s *queueState[T]) bool {
		return len(s.data) >= n
	})
	if err != nil {
		return nil, err
	}
	defer g.Unlock()
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, _ := g.Value().dequeue()
		out = append(out, v)
	}
	return out, nil
}

// Peek returns the head value without removing it. ok is false when empty.
func (q *Queue[T]) Peek() (v T, ok bool) {
	g := q.lock.Lock()
	defer g.Unlock()
	s := g.Value()
	if len(s.data) == 0 {
		return v, false
	}
	return s.data[0], true
}

// Len returns the number of elements currently queued.
func (q *Queue[T]) Len() int {
	g := q.lock.Lock()
	defer g.Unlock()
	return len(g.Value().data)
}

// IsEmpty reports whether the queue is empty.
func (q *Queue[T]) IsEmpty() bool { return q.Len() == 0 }

// Contains reports whether v is currently present in the queue.
func (q *Queue[T]) Contains(v T) bool {
	g := q.lock.Lock()
	defer g.Unlock()
	s := g.Value()
	if s.dedup {
		_, ok := s.set[v]
		return ok
	}
	for _, x := range s.data {
		if x == v {
			return true
		}
	}
	return false
}

// Remove deletes the first occurrence of v from the queue if present.
// Returns true if removed.
func (q *Queue[T]) Remove(v T) bool {
	g := q.lock.Lock()
	defer g.Unlock()
	s := g.Value()
	for i, x := range s.data {
		if x == v {
			copy(s.data[i:], s.data[i+1:])
			s.data = s.data[:len(s.data)-1]
			if s.dedup {
				delete(s.set, v)
			}
			return true
		}
	}
	return false
}

// Clear removes all elements from the queue.
func (q *Queue[T]) Clear() {
	g := q.lock.Lock()
	defer g.Unlock()
	s := g.Value()
	s.data = s.data[:0]
	if s.dedup {
		clear(s.set)
	}
}

// ToSlice returns a copy of the queue's contents in FIFO order.
func (q *Queue[T]) ToSlice() []T {
	g := q.lock.Lock()
	defer g.Unlock()
	s := g.Value()
	out := make([]T, len(s.data))
	copy(out, s.data)
	return out
}

// ErrCanceled is returned by Take when the context is canceled.
var ErrCanceled = context.Canceled

// ErrDeadlineExceeded is returned by Take when the context deadline expires.
var ErrDeadlineExceeded = context.DeadlineExceeded

// IsContextError reports whether err equals context.Canceled or context.DeadlineExceeded.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
