package gocoro

// RWLock is a cooperative multi-reader / single-writer lock for
// coroutines, built on Queue. Grounded on the source library's GCoRWLock
// (g_co_rw_lock_* in original_source/src/gcoroutine.c).
//
// Invariant: never both writer-held and reader-held at once. Read locks
// are recursive (repeatable by the same coroutine and by others
// concurrently). Fairness is pure FIFO on the wait queue: there is no
// writer preference and no reader preference, so a reader-unlock that
// wakes a single waiter may wake a reader (which then proceeds immediately,
// since writer is false) rather than a waiting writer — this is expected,
// not a bug, per the source library.
//
// The zero value is an unlocked RWLock, ready to use. As with Queue, an
// RWLock must only be shared among coroutines belonging to one logical
// resume chain.
type RWLock struct {
	queue  Queue
	reader int
	writer bool
}

// ReaderLock acquires a read lock, yielding while a writer holds the lock.
// A writer that is only waiting in the queue does not hold readers back.
// Must be called from within a coroutine.
func (l *RWLock) ReaderLock() {
	for l.writer {
		data := YieldToQueue(&l.queue, nil)
		if data != nil {
			Logger.Warn().Msg("gocoro: RWLock reader woken with non-nil data")
		}
	}
	l.reader++
}

// ReaderUnlock releases one read lock. When the last reader releases, it
// wakes exactly one waiter (intended to be the front writer, if any, but
// see the fairness note on RWLock). Logs ErrRWLockNotReadLocked and does
// nothing if there is no outstanding reader.
func (l *RWLock) ReaderUnlock() {
	if l.reader == 0 {
		Logger.Warn().Err(ErrRWLockNotReadLocked).Msg("gocoro: ReaderUnlock called with no reader lock held")
		return
	}
	l.reader--
	if l.reader == 0 {
		if _, err := Schedule(&l.queue, 1); err != nil {
			Logger.Warn().Err(err).Msg("gocoro: RWLock.ReaderUnlock failed to schedule a waiter")
		}
	}
}

// WriterLock acquires the write lock, yielding while any coroutine holds a
// read or write lock. Must be called from within a coroutine.
func (l *RWLock) WriterLock() {
	for l.writer || l.reader > 0 {
		data := YieldToQueue(&l.queue, nil)
		if data != nil {
			Logger.Warn().Msg("gocoro: RWLock writer woken with non-nil data")
		}
	}
	l.writer = true
}

// WriterUnlock releases the write lock, waking all waiters — the first to
// actually acquire will be a reader or a writer depending on queue order.
// Logs ErrRWLockNotWriteLocked and does nothing if the lock is not
// currently write-locked.
func (l *RWLock) WriterUnlock() {
	if !l.writer {
		Logger.Warn().Err(ErrRWLockNotWriteLocked).Msg("gocoro: WriterUnlock called on a non-write-locked RWLock")
		return
	}
	l.writer = false
	if _, err := Schedule(&l.queue, -1); err != nil {
		Logger.Warn().Err(err).Msg("gocoro: RWLock.WriterUnlock failed to schedule waiters")
	}
}
