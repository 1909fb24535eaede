package gocoro

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the package-level sink for contract-violation and lifecycle
// diagnostics (§7: programmer contract violations are logged and return a
// sentinel, never a crash). Grounded on github.com/rs/zerolog, the backend
// logiface-zerolog wraps for structured leveled logging in the reference
// corpus. Disabled by default so the library is silent unless a caller
// opts in, matching how library packages in the corpus embed a logger that
// defaults to a no-op.
var Logger zerolog.Logger = zerolog.New(io.Discard).Level(zerolog.Disabled)

// SetLogger replaces the package-level logger used for contract-violation
// warnings (resuming a non-resumable coroutine, yielding outside a
// coroutine, unref with a non-empty resume queue, unlocking an unlocked
// mutex, and similar). It is not safe to call concurrently with coroutine
// operations that may log.
func SetLogger(l zerolog.Logger) {
	Logger = l
}
