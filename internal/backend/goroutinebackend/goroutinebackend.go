// Package goroutinebackend implements the backend.Backend contract on top
// of goroutines and channels, generalizing the source library's
// thread-per-coroutine fallback (one OS thread per coroutine, hand-off via
// condition variable) to Go's cheaper primitive: one goroutine per
// coroutine, hand-off via a single unbuffered channel per coroutine.
//
// Grounded on github.com/tcard/coro's New/Resume/yield channel dance
// (a single yieldCh ping-ponged between the coroutine and its resumer),
// generalized here to the spec's Coroutine record (ref count, caller
// chain, resume queue) so that arbitrary nesting and the deferred-resume
// queue built on top of it (see the root gocoro package) work the same
// way they would atop a true stack-swap backend.
package goroutinebackend

import (
	"runtime"
	"sync"

	"github.com/tcard/gocoro/internal/backend"
)

// state is the goroutinebackend-private extension stored in
// backend.Coroutine.Private.
type state struct {
	// ch is used in both directions: Switch sends an Action into the
	// target's ch to hand it control, and later blocks receiving from the
	// "from" coroutine's own ch to learn what action was delivered back.
	// Exactly one goroutine ever receives from a given ch (its owner), so
	// no further synchronization is needed.
	ch chan backend.Action
}

// Backend is the goroutine-and-channel implementation of backend.Backend.
type Backend struct {
	// registry maps a scraped goroutine id to the coroutine currently
	// resident on it: either a real coroutine (registered by its own
	// trampoline, deregistered on termination) or a synthesized leader
	// (registered lazily by Self, never automatically deregistered --
	// Go has no goroutine-exit hook to mirror a TLS destructor).
	registry sync.Map // map[uint64]*backend.Coroutine
}

// New constructs a Backend. Each instance owns an independent goroutine-id
// registry; the root gocoro package uses a single package-level instance.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) New(fn func(any) any) *backend.Coroutine {
	if fn == nil {
		panic("goroutinebackend: New called with a nil func")
	}

	co := &backend.Coroutine{
		Fn: fn,
		Private: &state{
			ch: make(chan backend.Action),
		},
	}
	co.RefCount.Store(1)

	go b.trampoline(co)

	return co
}

// trampoline is the body every coroutine's dedicated goroutine runs. It
// mirrors the stack-swap backend's bootstrap-then-loop trampoline
// ("data = func(data); switch(self, caller, TERMINATE)") without needing a
// prepared jump buffer, since the Go scheduler already gives this goroutine
// its own growable stack.
func (b *Backend) trampoline(co *backend.Coroutine) {
	st := co.Private.(*state)

	id := currentGoroutineID()
	b.registry.Store(id, co)
	defer b.registry.Delete(id)

	// Block until the first Resume delivers control, or until Free closes
	// this channel because co was unreffed to zero before ever being
	// resumed: spec §8 requires that case to free the coroutine without
	// running its body, which for this backend means returning here
	// without ever calling co.Fn.
	if _, ok := <-st.ch; !ok {
		return
	}

	// The running body holds its own reference, independent of the
	// owner's, so that the owner may Unref its handle while the body is
	// still executing. The core runtime releases this reference when
	// TERMINATE propagates back to the resumer (see commonSwap).
	co.RefCount.Add(1)

	result := co.Fn(co.Data)
	co.Data = result

	// The coroutine is finished; hand control back to its caller. This
	// call never returns: this goroutine is about to exit.
	b.Switch(co, co.Caller, backend.Terminate)
}

func (b *Backend) Free(co *backend.Coroutine) {
	// No backend-owned resources outlive the goroutine itself; the
	// trampoline's return is the deallocation event. If co already
	// terminated (Done), that return has already happened and there is
	// nothing left to signal. Otherwise co was unreffed to zero before
	// ever being resumed, so its trampoline is still parked on its first
	// receive from ch (the implicit body reference means it can only
	// reach any later receive once Done, which rules that case out here);
	// closing ch wakes it to return immediately without invoking Fn.
	if !co.Done {
		close(co.Private.(*state).ch)
	}
}

func (b *Backend) Switch(from, to *backend.Coroutine, action backend.Action) backend.Action {
	toState := to.Private.(*state)
	toState.ch <- action

	if action == backend.Terminate {
		// "from" (the coroutine whose trampoline is calling this) is
		// finished; end its goroutine here (running the trampoline's
		// deferred registry cleanup) so this call never returns.
		runtime.Goexit()
	}

	fromState := from.Private.(*state)
	return <-fromState.ch
}

func (b *Backend) Self() *backend.Coroutine {
	id := currentGoroutineID()
	if v, ok := b.registry.Load(id); ok {
		return v.(*backend.Coroutine)
	}

	// Leaders need their own channel too: a coroutine resumed by a leader
	// yields back into it by sending on this channel, exactly as it would
	// for any other resumer, so leaders participate symmetrically in the
	// Switch protocol even though nothing ever spawns a goroutine for them.
	leader := &backend.Coroutine{
		Private: &state{ch: make(chan backend.Action)},
	}
	leader.RefCount.Store(1)
	if actual, loaded := b.registry.LoadOrStore(id, leader); loaded {
		return actual.(*backend.Coroutine)
	}
	return leader
}

func (b *Backend) InCoroutine() bool {
	return b.Self().Caller != nil
}

// ForgetCurrentGoroutine deregisters any leader synthesized for the calling
// goroutine. Go has no per-goroutine destructor to mirror the source
// library's thread-exit cleanup of synthesized leaders, so callers that
// drive Resume from many short-lived goroutines should call this before
// such a goroutine returns, to bound registry growth.
func (b *Backend) ForgetCurrentGoroutine() {
	b.registry.Delete(currentGoroutineID())
}

// currentGoroutineID scrapes the calling goroutine's id out of a runtime
// stack trace. Grounded on go-eventloop's getGoroutineID/isLoopThread
// (eventloop/loop.go), which uses the same "goroutine " prefix parse to
// confirm it is running on its own loop goroutine.
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}
