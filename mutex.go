package gocoro

// Mutex is a cooperative binary lock for coroutines, built on Queue.
// Grounded on the source library's GCoMutex (g_co_mutex_init/lock/unlock
// in original_source/src/gcoroutine.c).
//
// Lock is strictly non-reentrant: a coroutine that locks an already-locked
// Mutex it itself holds deadlocks, same as the source library — the caller
// is responsible for avoiding that. Waiters are granted the lock in strict
// FIFO order.
//
// The zero value is an unlocked Mutex, ready to use. As with Queue, a
// Mutex must only be shared among coroutines belonging to one logical
// resume chain.
type Mutex struct {
	queue  Queue
	locked bool
}

// Lock acquires m, yielding to other coroutines while m is held elsewhere.
// Must be called from within a coroutine.
func (m *Mutex) Lock() {
	for m.locked {
		data := YieldToQueue(&m.queue, nil)
		if data != nil {
			Logger.Warn().Msg("gocoro: Mutex waiter woken with non-nil data")
		}
	}
	m.locked = true
}

// Unlock releases m, waking exactly one waiter (in FIFO order) so it may
// acquire the lock on its next turn. Logs ErrMutexNotLocked and does
// nothing if m is not locked.
func (m *Mutex) Unlock() {
	if !m.locked {
		Logger.Warn().Err(ErrMutexNotLocked).Msg("gocoro: Unlock called on an unlocked Mutex")
		return
	}
	m.locked = false
	if _, err := Schedule(&m.queue, 1); err != nil {
		Logger.Warn().Err(err).Msg("gocoro: Mutex.Unlock failed to schedule a waiter")
	}
}
