package iterator_test

import (
	"fmt"

	"github.com/tcard/gocoro/iterator"
)

func ExampleNew() {
	it := iterator.New(func(yield func(any)) any {
		for _, v := range []any{"foo", "bar", "baz"} {
			yield(v)
		}
		return "done"
	})

	for it.Next() {
		fmt.Println("yielded:", it.Yielded)
	}
	fmt.Println("returned:", it.Returned)

	// Output:
	// yielded: foo
	// yielded: bar
	// yielded: baz
	// returned: done
}
