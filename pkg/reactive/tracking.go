package reactive

import (
	"runtime"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// trackingContext holds the reactive state for a goroutine: the current
// listener, the current owner, and the batch queue. Each goroutine has
// its own context so concurrent renders do not interfere.
type trackingContext struct {
	// currentOwner receives newly created effects and cleanups.
	currentOwner *Owner

	// currentListener is what is currently tracking dependencies.
	// nil means reads do not create subscriptions.
	currentListener Listener

	// batchDepth tracks nested Batch() calls. When > 0, notifications
	// queue instead of firing immediately.
	batchDepth int

	// pendingIDs holds the IDs of listeners currently queued, so a
	// listener notified through several paths (directly and via a memo)
	// fires exactly once per flush round.
	pendingIDs mapset.Set[uint64]

	// memoQueue and effectQueue hold queued listeners. Memos and render
	// scopes drain before effects so an effect never pulls a stale memo.
	memoQueue   []Listener
	effectQueue []Listener

	// flushing is set while the queues are draining; notifications that
	// arrive mid-flush join the queues instead of starting a new drain.
	flushing bool
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID extracts the goroutine ID from the runtime stack.
// Implementation detail; never exposed.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> ".
	var id uint64
	for i := 10; i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current
// goroutine, creating one if needed.
func getTrackingContext() *trackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}

	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// getCurrentListener returns the listener currently tracking dependencies,
// or nil if no tracking is active.
func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener swaps the current listener and returns the previous
// one so it can be restored.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

// getCurrentOwner returns the owner for the current goroutine, or nil.
func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

// CurrentOwner returns the owner scope active on this goroutine, or
// nil outside of a scoped run. Context lookups resolve against it.
func CurrentOwner() *Owner {
	return getCurrentOwner()
}

// setCurrentOwner swaps the current owner and returns the previous one.
func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

// WithListener runs fn with l installed as the tracking listener.
// The previous listener is restored on all exit paths, including panics.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// WithOwner runs fn with owner installed as the current owner. Effects
// and cleanups created inside fn belong to owner and are released when
// it is disposed.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}
