package goroutinebackend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Free on a coroutine that was never resumed must wake its parked
// trampoline without ever invoking Fn, per spec §8's "unref before the
// first resume frees the coroutine without running its body".
func TestFreeBeforeFirstResumeAbandonsTrampoline(t *testing.T) {
	b := New()
	ran := make(chan struct{})
	co := b.New(func(any) any {
		close(ran)
		return nil
	})

	b.Free(co)

	select {
	case <-ran:
		t.Fatal("Fn ran on a coroutine freed before its first resume")
	case <-time.After(50 * time.Millisecond):
	}

	// A closed channel delivers the zero value to every receiver, so this
	// is safe to observe here regardless of whether the trampoline has
	// already consumed it.
	st := co.Private.(*state)
	_, ok := <-st.ch
	assert.False(t, ok, "Free should close the unstarted coroutine's channel")
}
