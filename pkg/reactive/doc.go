// Package reactive implements the fine-grained reactive core: signals,
// memos, effects, ownership scopes, and batched notification.
//
// A Signal is a mutable value cell. Reading it inside a tracked context
// (a memo computation, an effect body, or a component render) subscribes
// the current listener, which is notified when the value changes. Memos
// are lazy, cached derivations; effects are side effects that re-run
// when their dependencies change.
//
// Updates flush synchronously: outside of Batch, a Set notifies every
// affected listener before it returns. Inside Batch, notifications are
// collected, deduplicated, and flushed exactly once when the outermost
// batch completes. Memos are always invalidated before effects run, so
// an effect that reads both a signal and a memo derived from it never
// observes a stale memo value.
package reactive
