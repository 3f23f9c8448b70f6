package reactive

// Listener is anything that can be notified when a dependency changes.
// Implemented by memos, effects, and component render scopes.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// For memos this invalidates the cached value; for effects it re-runs
	// the effect (immediately outside a batch, deferred inside one).
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// Cleanup is a function returned by effects to release resources.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()

// Source is the type-erased read surface of a Signal or Memo. The vdom
// layer accepts a Source wherever a live binding is allowed; the
// capability is decided at construction time, never inferred
// structurally at call sites.
type Source interface {
	// ID returns the unique identifier of the underlying cell.
	ID() uint64

	// AnyGet returns the current value and subscribes the current listener.
	AnyGet() any

	// AnyPeek returns the current value without subscribing.
	AnyPeek() any
}
