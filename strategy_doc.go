package xylock

// Choosing a wake-up strategy
//
// xylock and the condlock subpackage implement the same contract, an
// exclusive lock whose acquisition waits for a condition over the protected
// value, with two different wake-up strategies. Pick one per deployment;
// do not mix both around the same piece of state.
//
// Hand-off (this package):
//   - A release scans the parked waiters and, on the first condition that
//     holds, moves the lock straight into that waiter's hands. The woken
//     goroutine does not recheck: the releaser verified the condition while
//     holding the lock and nobody can have intervened since.
//   - One waiter woken per release, no broadcast storm, O(1) targeted wake
//     after the scan.
//   - No bounded waits. Once parked, a waiter returns only when a release
//     finds its condition true; a condition that never becomes true starves
//     its waiter. This is a documented limitation, not something the package
//     patches around.
//
// Broadcast/recheck (package condlock):
//   - Every release wakes all waiters; each reacquires the lock in scheduler
//     order and rechecks its own condition, re-waiting if still false.
//   - Cost is O(waiters) per release, but waits compose naturally with
//     context cancellation and deadlines: LockWhenContext and
//     LockWhenTimeout return without the lock when the bound expires.
//
// Neither strategy orders waiters: no FIFO, no priorities. Any apparent
// ordering under condlock is an artifact of goroutine scheduling, not a
// contract.
//
// Conditions must be pure reads of the protected value. They run on other
// goroutines (the releaser, under hand-off) and while locks are held, so a
// condition that mutates, blocks, or touches the same Mutex will corrupt
// state or deadlock.
//
// Neither package poisons a lock. A holder that panics releases the lock
// through its deferred Unlock and the panic propagates; a holder that
// abandons its Guard without unlocking leaves the lock held forever. Use
// defer.
