package gocoro

import "errors"

// Sentinel errors for the programmer-contract violations described in
// spec §7. None of these are ever surfaced across a Yield boundary: the
// data channel is the only inter-coroutine communication, so every
// violation is reported via Logger. Schedule and ResumeHead additionally
// return the sentinel; the other operations have no error result and only
// log it.
var (
	// ErrNotResumable is logged by Resume when the target is nil, has
	// terminated, or is already running nested inside another coroutine
	// (its Caller is non-nil), and by Ref, Unref and Resumable on a nil
	// coroutine.
	ErrNotResumable = errors.New("gocoro: coroutine is not resumable")

	// ErrNotInCoroutine is logged by Yield and YieldToQueue, and returned
	// by Schedule, when called from outside any coroutine.
	ErrNotInCoroutine = errors.New("gocoro: not called from within a coroutine")

	// ErrResumeQueueNotEmpty is logged (not returned: Unref has no return
	// value) when Unref frees a coroutine whose resume queue is non-empty,
	// which should never happen per the invariant that a resume queue is
	// only non-empty while its owner is suspended or running.
	ErrResumeQueueNotEmpty = errors.New("gocoro: unref of coroutine with non-empty resume queue")

	// ErrInvalidScheduleCount is returned by (*Queue).Schedule when n < -1.
	ErrInvalidScheduleCount = errors.New("gocoro: schedule count must be -1 or >= 0")

	// ErrQueueEmpty is returned by (*Queue).ResumeHead when the queue has
	// no waiters to resume.
	ErrQueueEmpty = errors.New("gocoro: queue is empty")

	// ErrMutexNotLocked is logged by (*Mutex).Unlock when the mutex is
	// not currently locked.
	ErrMutexNotLocked = errors.New("gocoro: mutex is not locked")

	// ErrRWLockNotReadLocked is logged by (*RWLock).ReaderUnlock when
	// the lock has no outstanding readers.
	ErrRWLockNotReadLocked = errors.New("gocoro: rwlock has no reader to unlock")

	// ErrRWLockNotWriteLocked is logged by (*RWLock).WriterUnlock when
	// the lock is not currently write-locked.
	ErrRWLockNotWriteLocked = errors.New("gocoro: rwlock is not write-locked")
)
