package reactive

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Batch groups multiple signal writes into a single notification
// phase. All writes inside fn are collected; when the outermost batch
// completes, each affected listener is notified exactly once, with
// memos invalidated before any effect runs.
//
// Batches nest: notifications fire only when the outermost batch ends.
//
//	Batch(func() {
//	    first.Set("John")
//	    last.Set("Doe")
//	})
//	// dependents notified once, observing both writes
func Batch(fn func()) {
	ctx := getTrackingContext()
	ctx.batchDepth++

	defer func() {
		ctx.batchDepth--
		if ctx.batchDepth == 0 {
			flushPending(ctx)
		}
	}()

	fn()
}

// enqueueListener queues l for notification. A listener already queued
// is not queued again, so a change reaching it through several paths
// (directly and through a memo chain) fires it once per flush round.
func enqueueListener(ctx *trackingContext, l Listener) {
	if ctx.pendingIDs == nil {
		ctx.pendingIDs = mapset.NewThreadUnsafeSet[uint64]()
	}
	if !ctx.pendingIDs.Add(l.ID()) {
		return
	}

	if _, isEffect := l.(*Effect); isEffect {
		ctx.effectQueue = append(ctx.effectQueue, l)
	} else {
		ctx.memoQueue = append(ctx.memoQueue, l)
	}
}

// flushPending drains the notification queues: all queued memos and
// render scopes first, then effects one at a time, returning to the
// memo queue between effects. Invalidation therefore always precedes
// any effect that could pull the invalidated value, which keeps
// diamond-shaped graphs free of stale reads and double-firing.
//
// Re-entrant calls (a notification raised while the flush is running,
// e.g. an effect writing another signal) join the queues and are
// drained by the loop already in progress.
func flushPending(ctx *trackingContext) {
	if ctx.flushing {
		return
	}
	ctx.flushing = true
	defer func() { ctx.flushing = false }()

	for {
		if len(ctx.memoQueue) > 0 {
			l := ctx.memoQueue[0]
			ctx.memoQueue = ctx.memoQueue[1:]
			ctx.pendingIDs.Remove(l.ID())
			safeMarkDirty(l)
			continue
		}
		if len(ctx.effectQueue) > 0 {
			l := ctx.effectQueue[0]
			ctx.effectQueue = ctx.effectQueue[1:]
			ctx.pendingIDs.Remove(l.ID())
			safeMarkDirty(l)
			continue
		}
		return
	}
}

// Untracked runs fn without tracking signal reads as dependencies.
// For a single read, Signal.Peek is cheaper and clearer.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
