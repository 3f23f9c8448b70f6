package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a cached computation that automatically tracks its
// dependencies. When any dependency changes, the memo is invalidated
// and recomputes on the next read. Memos can themselves be subscribed
// to, so chains of derived values compose.
//
// Memos are lazy: if several dependencies change before a read, the
// memo recomputes once.
type Memo[T any] struct {
	base signalBase

	// compute produces the memo's value.
	compute func() T

	// value is the cached computed value.
	value   T
	valueMu sync.RWMutex

	// valid reports whether the cached value is current.
	valid atomic.Bool

	// sources are the cells this memo read during its last computation.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// equal determines whether a recomputation changed the value.
	equal func(T, T) bool

	// computing breaks infinite recursion on circular dependencies.
	computing atomic.Bool
}

// NewMemo creates a memo. The computation does not run until the first
// Get or Peek.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
	}
}

// Get returns the memo's value, recomputing if a dependency changed
// since the last read, and subscribes the current listener.
func (m *Memo[T]) Get() T {
	m.base.track()

	if !m.valid.Load() {
		m.recompute()
	}

	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// Peek returns the value without subscribing. Still recomputes if the
// cached value is stale.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// MarkDirty invalidates the memo and propagates to subscribers.
// Implements Listener.
func (m *Memo[T]) MarkDirty() {
	if m.valid.CompareAndSwap(true, false) {
		m.base.notifySubscribers()
	}
}

// ID returns the unique identifier for this memo.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

// AnyGet implements Source.
func (m *Memo[T]) AnyGet() any { return m.Get() }

// AnyPeek implements Source.
func (m *Memo[T]) AnyPeek() any { return m.Peek() }

// SubscriberCount reports how many listeners are subscribed.
func (m *Memo[T]) SubscriberCount() int { return m.base.SubscriberCount() }

// addSource implements dependent.
func (m *Memo[T]) addSource(source *signalBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()

	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

// WithEquals configures a custom equality function.
func (m *Memo[T]) WithEquals(fn func(T, T) bool) *Memo[T] {
	m.equal = fn
	return m
}

// recompute runs the computation, re-establishing the dependency set.
// Stale subscriptions are torn down first: conditional reads mean the
// set can shrink between runs.
func (m *Memo[T]) recompute() {
	if m.computing.Swap(true) {
		// Circular dependency; leave the cached value in place.
		return
	}
	defer m.computing.Store(false)

	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	old := setCurrentListener(m)
	defer setCurrentListener(old)

	defer func() {
		if r := recover(); r != nil {
			// A panicking computation leaves the memo invalid so the
			// next read retries; the error is surfaced, not swallowed.
			reportPanic("memo", r)
		}
	}()

	newValue := m.compute()

	m.valueMu.Lock()
	m.value = newValue
	m.valueMu.Unlock()

	m.valid.Store(true)
}

var (
	_ Source    = (*Memo[int])(nil)
	_ dependent = (*Memo[int])(nil)
)
