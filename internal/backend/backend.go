// Package backend defines the pluggable context-switch contract that the
// coroutine runtime is built on: create / free / switch / self / in-coroutine.
//
// Exactly one implementation ships with this module, goroutinebackend,
// since Go exposes no user-controllable stack-switch primitive (no
// ucontext, no native fiber API reachable from user code). A stack-swap or
// native-fiber backend, as shipped by the C ancestor of this library, has
// no safe expression in Go; goroutinebackend is the idiomatic replacement,
// generalizing the thread-per-coroutine fallback design to goroutines.
package backend

import "sync/atomic"

// Action tags a context transfer. Values are nonzero, matching the source
// library's requirement that the tag survive a return-twice control
// transfer primitive (not load-bearing in Go, which has no such primitive,
// but kept to document the provenance of the zero value being invalid).
type Action int

const (
	// Yield indicates the callee suspended, producing a value.
	Yield Action = iota + 1
	// Terminate indicates the callee's body returned.
	Terminate
)

func (a Action) String() string {
	switch a {
	case Yield:
		return "yield"
	case Terminate:
		return "terminate"
	default:
		return "invalid"
	}
}

// Coroutine is the shared record every backend produces and the runtime
// manipulates directly. The reference C implementation requires func, data,
// caller and resume_queue to occupy the head of any backend-extended
// struct, so that a backend-specific record can be reinterpreted as the
// common header. Go has no safe pointer-reinterpretation story for that
// trick, so this struct instead carries an opaque Private field that a
// backend populates with its own extension state; this is the idiomatic
// substitute for the C-style leading-struct "inheritance".
type Coroutine struct {
	RefCount atomic.Int64

	Fn   func(any) any
	Data any

	// Caller is a non-owning back-reference to the coroutine suspended on
	// a Resume targeting this one. Nil exactly when this coroutine is not
	// currently running nested inside another.
	Caller *Coroutine

	// ResumeQueue holds coroutines scheduled to run as soon as this one
	// next yields or terminates. Private to the coroutine it belongs to.
	ResumeQueue []*Coroutine

	// Private carries backend-specific extension state (e.g. the channel
	// goroutinebackend uses to hand off control).
	Private any

	// Done is set once this coroutine's body has returned. Caller alone
	// cannot distinguish "never resumed / suspended" from "terminated"
	// once the core runtime clears Caller on termination to satisfy the
	// invariant that Caller is nil whenever a coroutine last yielded or
	// returned; Done disambiguates so a terminated coroutine is never
	// mistaken for a merely-suspended, resumable one.
	Done bool
}

// Backend is the five-operation contract every context-switch
// implementation must satisfy.
type Backend interface {
	// New returns a fresh coroutine whose first entry into fn is deferred
	// until the first Switch into it. Must abort the process (not return
	// an error) if the underlying execution context cannot be allocated,
	// matching the source library's "construction has no recoverable
	// failure path" policy.
	New(fn func(any) any) *Coroutine

	// Free releases backend-owned resources. The caller guarantees co is
	// either already terminated, or was never resumed at all (ref count
	// reached zero before the first Resume) — never a coroutine currently
	// suspended mid-body, which the implicit body reference (see the root
	// package's commonSwap) keeps alive until termination regardless of
	// the owner's ref count.
	Free(co *Coroutine)

	// Switch transfers execution from "from" to "to", delivering action,
	// and returns the action delivered by whoever next switches back into
	// "from". When action == Terminate, the call never returns: "from" is
	// finished and its goroutine is about to exit.
	Switch(from, to *Coroutine, action Action) Action

	// Self returns the coroutine currently running on the calling
	// goroutine, synthesizing a leader the first time it's observed.
	Self() *Coroutine

	// InCoroutine reports whether Self().Caller != nil.
	InCoroutine() bool
}
