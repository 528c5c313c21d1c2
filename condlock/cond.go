package condlock

import "context"

// The wait machinery is a single broadcast channel, closed and replaced
// under the data lock. Waiters capture the current channel, release the
// lock, and select on the channel against their bound; a closed channel
// means "state changed, reacquire and recheck". Wakes can therefore be
// spurious or meant for someone else; every user of wait rechecks its
// condition in a loop.

// broadcast wakes every waiter. The caller must hold m.mu.
func (m *Mutex[T]) broadcast() {
	close(m.bcast)
	m.bcast = make(chan struct{})
}

// wait releases m.mu until the next broadcast or until ctx is done, then
// reacquires it before returning. The returned error is nil for a wake and
// ctx.Err() for an expired bound; the lock is held again either way.
func (m *Mutex[T]) wait(ctx context.Context) error {
	ch := m.bcast
	m.mu.Unlock()
	var err error
	select {
	case <-ch:
	case <-ctx.Done():
		err = ctx.Err()
	}
	m.mu.Lock()
	return err
}
