package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a reactive side effect that re-runs when its dependencies
// change. The body runs once at creation, then again on every change
// to a signal or memo it read during its last run. It may return a
// Cleanup that runs before each re-run and on disposal.
type Effect struct {
	id uint64

	// fn is the effect body.
	fn func() Cleanup

	// cleanup is the cleanup from the last run.
	cleanup Cleanup

	// sources are the cells this effect depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// owner is the scope that disposes this effect, if any.
	owner *Owner

	// running guards against re-entrant runs when the body writes to
	// one of its own dependencies.
	running atomic.Bool

	// disposed marks the effect as dead.
	disposed atomic.Bool
}

// NewEffect creates and immediately runs an effect within the current
// owner scope. Outside of Batch, the effect re-runs synchronously
// whenever a dependency changes; inside Batch it runs exactly once
// when the outermost batch completes, regardless of how many of its
// dependencies changed.
func NewEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}

	if owner := getCurrentOwner(); owner != nil {
		e.owner = owner
		owner.registerEffect(e)
	}

	e.run()
	return e
}

// MarkDirty re-runs the effect. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	e.run()
}

// ID returns the unique identifier for this effect.
// Implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect body under dependency tracking.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	if !e.running.CompareAndSwap(false, true) {
		// Re-entrant trigger from the body's own write; the run in
		// progress already observes the new value.
		return
	}
	defer e.running.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Stale subscriptions are torn down before re-tracking; the
	// dependency set can change between runs.
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	old := setCurrentListener(e)
	defer setCurrentListener(old)

	defer func() {
		if r := recover(); r != nil {
			reportPanic("effect", r)
		}
	}()

	e.cleanup = e.fn()
}

// addSource implements dependent.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose runs the pending cleanup and unsubscribes from all sources.
// Idempotent; a disposed effect never runs again.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// OnMount runs fn once, untracked, inside a fresh effect. Convenience
// for setup code that should not establish dependencies.
func OnMount(fn func()) {
	NewEffect(func() Cleanup {
		Untracked(fn)
		return nil
	})
}

// OnUnmount registers fn to run when the current owner is disposed.
func OnUnmount(fn func()) {
	if owner := getCurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

var _ dependent = (*Effect)(nil)
