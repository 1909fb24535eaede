package goroutinebackend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcard/gocoro/internal/backend"
	"github.com/tcard/gocoro/internal/backend/goroutinebackend"
)

func TestSelfSynthesizesStableLeader(t *testing.T) {
	b := goroutinebackend.New()
	defer b.ForgetCurrentGoroutine()

	l1 := b.Self()
	l2 := b.Self()
	assert.Same(t, l1, l2)
	assert.False(t, b.InCoroutine())
}

func TestSwitchRoundTrip(t *testing.T) {
	b := goroutinebackend.New()
	defer b.ForgetCurrentGoroutine()

	var observed any
	co := b.New(func(data any) any {
		observed = data
		return "done"
	})
	co.RefCount.Add(1)

	leader := b.Self()
	co.Caller = leader
	co.Data = "hello"
	action := b.Switch(leader, co, backend.Yield)

	require.Equal(t, backend.Terminate, action)
	assert.Equal(t, "hello", observed)
	assert.Equal(t, "done", co.Data)
}

func TestForgetCurrentGoroutineDropsLeader(t *testing.T) {
	b := goroutinebackend.New()
	l1 := b.Self()
	b.ForgetCurrentGoroutine()
	l2 := b.Self()
	assert.NotSame(t, l1, l2)
}
