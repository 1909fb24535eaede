package gocoro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcard/gocoro"
)

func TestQueueEmptyResumeHead(t *testing.T) {
	var q gocoro.Queue
	assert.True(t, q.IsEmpty())

	v, err := gocoro.ResumeHead(&q, nil)
	assert.Nil(t, v)
	assert.ErrorIs(t, err, gocoro.ErrQueueEmpty)
}

func TestQueueScheduleOrder(t *testing.T) {
	var q gocoro.Queue
	var order []string

	mk := func(name string) *gocoro.Coroutine {
		return gocoro.New(func(any) any {
			gocoro.YieldToQueue(&q, nil)
			order = append(order, name)
			return nil
		})
	}

	a, b := mk("a"), mk("b")
	defer a.Unref()
	defer b.Unref()

	a.Resume(nil)
	b.Resume(nil)
	require.False(t, q.IsEmpty())

	driver := gocoro.New(func(any) any {
		n, err := gocoro.Schedule(&q, -1)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		return nil
	})
	defer driver.Unref()
	driver.Resume(nil)

	assert.Equal(t, []string{"a", "b"}, order)
	assert.True(t, q.IsEmpty())
}

func TestScheduleRejectsInvalidCount(t *testing.T) {
	var q gocoro.Queue
	c := gocoro.New(func(any) any {
		_, err := gocoro.Schedule(&q, -2)
		assert.ErrorIs(t, err, gocoro.ErrInvalidScheduleCount)
		return nil
	})
	defer c.Unref()
	c.Resume(nil)
}

func TestScheduleOutsideCoroutine(t *testing.T) {
	var q gocoro.Queue
	n, err := gocoro.Schedule(&q, 1)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, gocoro.ErrNotInCoroutine)
}
