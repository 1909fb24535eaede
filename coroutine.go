// Package gocoro implements portable, stackful, cooperative coroutines and
// the coroutine-aware synchronization primitives built on top of them
// (wait queue, mutex, reader-writer lock).
//
// A coroutine is a lightweight execution context with its own stack that
// runs within a single goroutine; control transfer between coroutines is
// always explicit, via Resume and Yield, never preemptive. Each coroutine
// preserves arbitrary call-stack state across suspension points, the way a
// goroutine blocked on a channel receive preserves its own stack.
//
// There is no automatic scheduling, no cross-goroutine-home migration
// support beyond what the goroutine scheduler itself provides, no IO or
// timer integration, and no cancellation or timeout support: a coroutine
// runs until it explicitly hands control back, and a coroutine waiting on
// a queue can only be released by an explicit Schedule or Resume.
package gocoro

import (
	"github.com/tcard/gocoro/internal/backend"
	"github.com/tcard/gocoro/internal/backend/goroutinebackend"
)

// defaultBackend is the package-wide context-switch backend. Exactly one
// backend ships with this module: goroutinebackend, since Go exposes no
// user-controllable stack-switch primitive for a true stack-swap or
// native-fiber backend to be built on.
var defaultBackend backend.Backend = goroutinebackend.New()

// Coroutine is a handle to a stackful coroutine. The zero value is not
// usable; obtain one from New.
//
// Coroutine is defined with the same underlying type as backend.Coroutine
// so that the core runtime (this file), the backend (internal/backend),
// and a concrete backend implementation (internal/backend/goroutinebackend)
// can all operate on the same record without a Go-side vtable for every
// field access — the closest available substitute for the source
// library's "func/data/caller/resume_queue at the head of any
// backend-extended struct" ABI requirement, which relies on C struct
// prefix-casting that has no safe equivalent in Go.
type Coroutine backend.Coroutine

func (c *Coroutine) raw() *backend.Coroutine { return (*backend.Coroutine)(c) }

func fromRaw(co *backend.Coroutine) *Coroutine { return (*Coroutine)(co) }

// New allocates a coroutine whose body is fn. The coroutine does not start
// running until the first call to Resume. fn receives the data passed to
// the first Resume (later Resumes deliver their data as the return value
// of Yield) and must return the value to deliver to whoever performs the
// matching Resume call after the coroutine terminates; the return value
// may be nil.
//
// New panics if fn is nil: construction has no recoverable failure path in
// the public API (§7), matching the source library's "aborts on failure"
// policy for coroutine/stack allocation.
func New(fn func(any) any) *Coroutine {
	if fn == nil {
		panic("gocoro: New called with a nil func")
	}
	return fromRaw(defaultBackend.New(fn))
}

// Ref increments the reference count and returns c, for chaining.
//
// Ref logs ErrNotResumable and returns nil without effect if c is nil.
func (c *Coroutine) Ref() *Coroutine {
	if c == nil {
		Logger.Warn().Err(ErrNotResumable).Msg("gocoro: Ref called with a nil coroutine")
		return nil
	}
	c.raw().RefCount.Add(1)
	return c
}

// Unref decrements the reference count, freeing the coroutine's backend
// resources when it reaches zero. Unref before the first Resume frees the
// coroutine without ever running its body. Unref while the body is
// executing is safe and does not free it: the running body holds its own
// reference, released when it terminates.
//
// It is a contract violation (logged, not panicked, per §7) to Unref a
// coroutine whose resume queue is non-empty; per the invariant in §3, that
// can only happen if the coroutine is suspended or running with pending
// scheduled wakeups, which should never coincide with the reference count
// reaching zero.
//
// Unref logs ErrNotResumable and does nothing if c is nil.
func (c *Coroutine) Unref() {
	if c == nil {
		Logger.Warn().Err(ErrNotResumable).Msg("gocoro: Unref called with a nil coroutine")
		return
	}
	raw := c.raw()
	if raw.RefCount.Add(-1) != 0 {
		return
	}
	if len(raw.ResumeQueue) != 0 {
		Logger.Warn().Err(ErrResumeQueueNotEmpty).Msg("gocoro: freeing coroutine with non-empty resume queue")
	}
	defaultBackend.Free(raw)
}

// Resumable reports whether c can currently be resumed: it has not
// terminated and it is not already running nested inside another
// coroutine.
//
// Resumable logs ErrNotResumable and returns false if c is nil.
func (c *Coroutine) Resumable() bool {
	if c == nil {
		Logger.Warn().Err(ErrNotResumable).Msg("gocoro: Resumable called with a nil coroutine")
		return false
	}
	raw := c.raw()
	return raw.Caller == nil && !raw.Done
}

// Resume transfers control into c, delivering data as the value its next
// Yield (or, on first Resume, its body's fn) receives. Resume blocks the
// calling goroutine until c yields or terminates, and returns the value c
// yielded, or the value fn returned if c's body terminated.
//
// Resume logs ErrNotResumable and returns nil without transferring control
// if c is nil or not resumable (already terminated, or already running
// nested inside another coroutine).
func (c *Coroutine) Resume(data any) any {
	if c == nil {
		Logger.Warn().Err(ErrNotResumable).Msg("gocoro: Resume called with a nil coroutine")
		return nil
	}
	if !c.Resumable() {
		Logger.Warn().Err(ErrNotResumable).Msg("gocoro: Resume called on a non-resumable coroutine")
		return nil
	}

	self := Self()
	c.raw().Caller = self.raw()
	return commonSwap(self.raw(), c.raw(), data)
}

// Yield suspends the currently running coroutine, returning data to
// whoever called Resume on it, and blocks until that coroutine (or any
// other) calls Resume on it again, at which point Yield returns the data
// passed to that Resume.
//
// Yield logs ErrNotInCoroutine and returns nil immediately if called
// outside any coroutine.
func Yield(data any) any {
	self := Self()
	to := self.raw().Caller
	if to == nil {
		Logger.Warn().Err(ErrNotInCoroutine).Msg("gocoro: Yield called outside a coroutine")
		return nil
	}

	self.raw().Caller = nil
	return commonSwap(self.raw(), to, data)
}

// Self returns the coroutine currently running on the calling goroutine.
// Outside any coroutine body, it returns a synthetic leader coroutine
// representing the calling goroutine itself; the leader's fn is never
// invoked and its Caller is always nil.
func Self() *Coroutine {
	return fromRaw(defaultBackend.Self())
}

// InCoroutine reports whether the calling goroutine is currently executing
// inside a coroutine body (as opposed to being, or acting as, a leader).
func InCoroutine() bool {
	return defaultBackend.InCoroutine()
}

// ForgetCurrentGoroutine releases the synthetic leader, if any, associated
// with the calling goroutine. Go provides no goroutine-exit hook to mirror
// the source library's thread-local destructor for synthesized leaders, so
// callers that repeatedly call Resume from many short-lived goroutines
// (rather than one long-lived driver goroutine) should call this before
// such a goroutine returns, to bound the backend's goroutine-id registry.
func ForgetCurrentGoroutine() {
	if f, ok := defaultBackend.(interface{ ForgetCurrentGoroutine() }); ok {
		f.ForgetCurrentGoroutine()
	}
}

// commonSwap implements §4.2.1: store data into to's slot, switch, drain
// to's deferred resume queue immediately upon regaining control, and
// interpret the delivered action.
func commonSwap(from, to *backend.Coroutine, data any) any {
	to.Data = data
	action := defaultBackend.Switch(from, to, backend.Yield)

	drainResumeQueue(to)

	switch action {
	case backend.Yield:
		return from.Data
	case backend.Terminate:
		result := to.Data
		to.Caller = nil
		to.Done = true
		unrefRaw(to)
		return result
	default:
		panic("gocoro: backend switch returned an invalid action")
	}
}

// drainResumeQueue implements §4.2.2: snapshot-and-clear co's resume queue,
// then resume each entry in order. Snapshotting before iterating (rather
// than draining a shared live slice) means a coroutine resumed mid-drain
// that itself calls Schedule only affects the next drain, not this one —
// ported directly from the source library's coroutine_resume_queue, which
// swaps the queue for an empty one before iterating.
func drainResumeQueue(co *backend.Coroutine) {
	if len(co.ResumeQueue) == 0 {
		return
	}
	pending := co.ResumeQueue
	co.ResumeQueue = nil
	for _, entry := range pending {
		fromRaw(entry).Resume(nil)
	}
}

// unrefRaw is Unref's logic, operating on the raw backend record; used by
// commonSwap's TERMINATE branch to release the implicit reference the
// trampoline took on entry (see goroutinebackend.trampoline).
func unrefRaw(raw *backend.Coroutine) {
	if raw.RefCount.Add(-1) != 0 {
		return
	}
	if len(raw.ResumeQueue) != 0 {
		Logger.Warn().Err(ErrResumeQueueNotEmpty).Msg("gocoro: freeing coroutine with non-empty resume queue")
	}
	defaultBackend.Free(raw)
}
