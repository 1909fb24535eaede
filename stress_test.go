package gocoro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"

	"github.com/tcard/gocoro"
)

// Drives many independent resume chains concurrently, each on its own
// goroutine, to exercise the goroutine-id registry and reference counting
// under concurrency: every chain must observe its own leader and its own
// coroutine's result, with no cross-talk between chains.
func TestConcurrentChainsDoNotInterfere(t *testing.T) {
	const chains = 64
	const depth = 16

	var g errgroup.Group
	for i := 0; i < chains; i++ {
		i := i
		g.Go(func() error {
			defer gocoro.ForgetCurrentGoroutine()

			sum := 0
			c := gocoro.New(func(n any) any {
				total := 0
				for k := 0; k < depth; k++ {
					total += gocoro.Yield(nil).(int)
				}
				return total
			})
			defer c.Unref()

			c.Resume(nil)
			for k := 0; k < depth; k++ {
				v := i*depth + k
				sum += v
				result := c.Resume(v)
				if !c.Resumable() {
					if result.(int) != sum {
						return assertionError{i, sum, result.(int)}
					}
				}
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
}

type assertionError struct {
	chain, want, got int
}

func (e assertionError) Error() string {
	return "chain mismatch"
}
