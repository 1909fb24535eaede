// Package exampleiterator is an example type-safe wrapper of iterator.New.
package exampleiterator

import (
	"github.com/tcard/gocoro/iterator"
)

// Foo is the type that a FooIterator yields.
type Foo string

// NewFooIterator wraps iterator.New with a type-safe interface.
func NewFooIterator(f func(yield func(Foo)) error) *FooIterator {
	var it FooIterator
	it.it = iterator.New(func(yield func(any)) any {
		return f(func(v Foo) {
			it.Yielded = v
			yield(nil)
		})
	})
	return &it
}

// A FooIterator holds what's needed to iterate Foos.
type FooIterator struct {
	it *iterator.Iterator

	// Yielded holds the most recent Foo produced. Valid only after a call
	// to Next that returned true.
	Yielded Foo

	// Returned holds the iterator body's error, once Next has returned
	// false.
	Returned error
}

// Next advances the iterator. It returns true if another Foo was yielded
// (now available via Yielded), or false once the body has returned (its
// error, possibly nil, now available via Returned).
func (it *FooIterator) Next() bool {
	more := it.it.Next()
	if !more && it.it.Returned != nil {
		it.Returned = it.it.Returned.(error)
	}
	return more
}
