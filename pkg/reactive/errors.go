package reactive

import (
	"fmt"
	"log"
	"sync/atomic"
)

// PanicHandler receives panics recovered at listener boundaries.
// scope is "effect", "memo", "listener", or "cleanup".
type PanicHandler func(scope string, recovered any)

var panicHandler atomic.Pointer[PanicHandler]

// SetPanicHandler installs a handler for panics recovered from effect
// and memo bodies. The default logs and continues; one failing
// listener must never prevent the other subscribers of a signal from
// running. Passing nil restores the default.
func SetPanicHandler(h PanicHandler) {
	if h == nil {
		panicHandler.Store(nil)
		return
	}
	panicHandler.Store(&h)
}

func reportPanic(scope string, recovered any) {
	if h := panicHandler.Load(); h != nil {
		(*h)(scope, recovered)
		return
	}
	log.Printf("filament: recovered panic in %s: %v", scope, recovered)
}

// Errorf builds a filament-prefixed error, used for fail-fast
// construction failures across the runtime.
func Errorf(format string, args ...any) error {
	return fmt.Errorf("filament: "+format, args...)
}
