// Package xylock provides a predicate-gated exclusive lock: a mutex that
// wraps a value and whose acquisition can additionally wait until the value
// satisfies a caller-supplied condition, with no manual condition-variable
// bookkeeping on the caller's side.
//
// A Mutex is created with New around an initial value. Lock and TryLock
// behave like an ordinary mutex and return a Guard giving access to the
// value. LockWhen(cond) blocks until cond holds for the value and returns a
// Guard under which cond is true at the instant of return.
//
// This package implements the hand-off wake-up strategy: when a Guard is
// released and a parked waiter's condition holds, the lock passes directly
// from the releasing goroutine to that waiter, with no window in which the
// lock appears free to anyone else. The woken waiter does not recheck its
// condition; the releaser already verified it while holding the lock. A
// release wakes at most one waiter, so there is no broadcast storm.
//
// The trade-off is that waits cannot be bounded: once parked, a LockWhen
// call returns only when some release finds its condition true. A condition
// that never becomes true starves its waiter. For deadline- or
// context-bounded waits use the condlock subpackage, which implements the
// same contract with a broadcast/recheck strategy. See strategy_doc.go for
// the full comparison.
package xylock
