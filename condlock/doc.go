// Package condlock provides the broadcast/recheck variant of the
// predicate-gated exclusive lock in package xylock.
//
// The contract is identical: LockWhen(cond) returns a Guard under which cond
// holds at the instant of return. The wake-up strategy differs: every Guard
// release wakes all waiters, each reacquires the lock in scheduler order and
// rechecks its own condition, re-waiting while it is still false. Releases
// cost O(waiters), but in exchange waits can be bounded: LockWhenContext and
// LockWhenTimeout give up without the lock when their bound expires, and a
// held Guard can re-wait mid-critical-section with AwaitWhen and its bounded
// variants.
//
// Timeouts and cancellations are expected outcomes, not faults; they surface
// as the context errors (see ErrTimeout, ErrCanceled, IsWaitError). As with
// xylock, locks are never poisoned: release Guards with a deferred Unlock.
package condlock
