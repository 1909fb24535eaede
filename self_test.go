package gocoro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tcard/gocoro"
)

// Scenario 6 (spec §8): self()/in_coroutine() from the leader, from inside
// a body, and again after the body yields back.
func TestSelfAndInCoroutine(t *testing.T) {
	defer gocoro.ForgetCurrentGoroutine()

	leader := gocoro.Self()
	assert.False(t, gocoro.InCoroutine())

	var self *gocoro.Coroutine
	var sawInCoroutine bool

	c := gocoro.New(func(any) any {
		self = gocoro.Self()
		sawInCoroutine = gocoro.InCoroutine()
		gocoro.Yield(nil)
		return nil
	})
	defer c.Unref()

	c.Resume(nil)
	assert.Same(t, c, self)
	assert.True(t, sawInCoroutine)

	// Back on the leader goroutine after the body yielded.
	assert.Same(t, leader, gocoro.Self())
	assert.False(t, gocoro.InCoroutine())

	c.Resume(nil) // let it terminate
}
