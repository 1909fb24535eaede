// Package iterator adapts a gocoro.Coroutine into a pull-based iteration
// protocol: a body that calls yield for each value it produces, driven by
// repeated calls to Next.
//
// Grounded on tcard/coro's NewIterator and its exampleiterator package,
// rebuilt on top of gocoro.Coroutine/Resume/Yield instead of a single
// closure-scoped Resume value, so each Iterator is backed by a real
// coroutine handle. Iterator does not expose that handle and never calls
// Unref on it.
package iterator

import "github.com/tcard/gocoro"

// Iterator holds what's needed to pull values out of a yield-driving
// coroutine body.
type Iterator struct {
	co *gocoro.Coroutine

	// Yielded holds the most recent value passed to yield. Valid only
	// after a call to Next that returned true.
	Yielded any

	// Returned holds the body's return value. Valid only after a call to
	// Next that returned false.
	Returned any
}

// New starts building an iterator around f. f receives a yield function:
// each call to yield suspends the coroutine and makes the yielded value
// available via Yielded, resuming when Next is called again. f's return
// value becomes Returned once the iterator is exhausted.
//
// The coroutine does not run until the first call to Next.
func New(f func(yield func(any)) any) *Iterator {
	it := &Iterator{}
	it.co = gocoro.New(func(any) any {
		return f(func(v any) {
			it.Yielded = v
			gocoro.Yield(nil)
		})
	})
	return it
}

// Next resumes the underlying coroutine and reports whether it yielded
// another value (true, with Yielded updated) or returned (false, with
// Returned updated). Calling Next after it has already returned false is a
// no-op that returns false again.
func (it *Iterator) Next() bool {
	if !it.co.Resumable() {
		return false
	}
	result := it.co.Resume(nil)
	if it.co.Resumable() {
		// Resume returned because the body yielded: Yielded was already
		// set by the yield closure before suspending.
		return true
	}
	it.Returned = result
	return false
}
