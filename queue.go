package gocoro

import "github.com/tcard/gocoro/internal/backend"

// Queue is a FIFO of coroutines waiting on some condition — the foundation
// Mutex and RWLock are built on. Grounded on the source library's GCoQueue
// (original_source/src/gcoroutine.c, g_co_queue_*).
//
// A Queue is safe to use only among coroutines that belong to the same
// logical resume chain (all ultimately driven by one leader/goroutine, per
// spec §5: "accessed only by coroutines resident on the same thread — no
// internal locking needed"). Sharing one across coroutines driven from
// independent, concurrently-running goroutines is a misuse the type does
// not defend against, exactly as in the source library.
type Queue struct {
	waiters []*backend.Coroutine
}

// Init resets q to empty. The zero value of Queue is already empty and
// ready to use; Init exists for parity with the source API and for
// resetting a Queue for reuse.
func (q *Queue) Init() {
	q.waiters = nil
}

// YieldToQueue appends the calling coroutine to q, then yields data to its
// caller. The coroutine remains suspended until some other coroutine calls
// Schedule or ResumeHead on q. Must be called from within a coroutine;
// logs ErrNotInCoroutine and returns nil immediately otherwise.
func YieldToQueue(q *Queue, data any) any {
	self := Self()
	if self.raw().Caller == nil {
		Logger.Warn().Err(ErrNotInCoroutine).Msg("gocoro: YieldToQueue called outside a coroutine")
		return nil
	}
	q.waiters = append(q.waiters, self.raw())
	return Yield(data)
}

// Schedule moves up to n waiters (or all of them, if n == -1) from the
// head of q into the calling coroutine's resume queue, returning the
// number actually moved. Those coroutines are resumed with nil the next
// time the caller yields or returns, not immediately — see drainResumeQueue
// — which caps stack depth at the nesting the caller deliberately chose
// instead of growing it with every chained wakeup.
//
// Must be called from within a coroutine. Returns (0, ErrNotInCoroutine) or
// (0, ErrInvalidScheduleCount) without moving anything on misuse.
func Schedule(q *Queue, n int) (int, error) {
	if n < -1 {
		Logger.Warn().Err(ErrInvalidScheduleCount).Int("n", n).Msg("gocoro: Schedule called with n < -1")
		return 0, ErrInvalidScheduleCount
	}

	self := Self()
	if self.raw().Caller == nil {
		Logger.Warn().Err(ErrNotInCoroutine).Msg("gocoro: Schedule called outside a coroutine")
		return 0, ErrNotInCoroutine
	}

	moved := 0
	for (n == -1 || moved < n) && len(q.waiters) > 0 {
		co := q.waiters[0]
		q.waiters = q.waiters[1:]
		self.raw().ResumeQueue = append(self.raw().ResumeQueue, co)
		moved++
	}
	return moved, nil
}

// ResumeHead pops the head of q and resumes it directly with data,
// returning the value it yields or returns. Unlike Schedule, ResumeHead is
// callable from outside a coroutine context (it performs an ordinary
// Resume, not a deferred one).
//
// Returns (nil, ErrQueueEmpty) without resuming anything if q is empty.
func ResumeHead(q *Queue, data any) (any, error) {
	if len(q.waiters) == 0 {
		Logger.Warn().Err(ErrQueueEmpty).Msg("gocoro: ResumeHead called on an empty queue")
		return nil, ErrQueueEmpty
	}
	co := q.waiters[0]
	q.waiters = q.waiters[1:]
	return fromRaw(co).Resume(data), nil
}

// IsEmpty reports whether q has no waiters.
func (q *Queue) IsEmpty() bool {
	return len(q.waiters) == 0
}
