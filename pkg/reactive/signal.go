package reactive

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// signalBase provides type-erased subscriber management. It is embedded
// in Signal[T] and Memo[T] to share subscription logic.
type signalBase struct {
	id uint64

	// subs are the listeners subscribed to this cell.
	subs []Listener

	// subMu protects the subs slice.
	subMu sync.RWMutex
}

// subscribe adds a listener, deduplicating by listener ID.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}

	s.subs = append(s.subs, l)
}

// SubscriberCount reports how many listeners are currently subscribed
// to this cell. Diagnostic; session metrics and tests read it.
func (s *signalBase) SubscriberCount() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subs)
}

// unsubscribe removes a listener from this cell's subscribers.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notifySubscribers queues all subscribers of this cell for
// notification and, outside of a batch, drains the queues before
// returning. The subscriber list is snapshotted first, so subscribing
// or unsubscribing during the flush never skips or double-fires a
// listener.
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	ctx := getTrackingContext()
	for _, sub := range subs {
		enqueueListener(ctx, sub)
	}

	if ctx.batchDepth == 0 {
		flushPending(ctx)
	}
}

// safeMarkDirty isolates a panicking listener so the remaining
// subscribers of the same cell still run.
func safeMarkDirty(l Listener) {
	defer func() {
		if r := recover(); r != nil {
			reportPanic("listener", r)
		}
	}()
	l.MarkDirty()
}

// track registers the current listener, if any, as a dependent of this
// cell and records the reverse link for resubscription teardown.
func (s *signalBase) track() {
	listener := getCurrentListener()
	if listener == nil {
		return
	}

	s.subscribe(listener)

	if d, ok := listener.(dependent); ok {
		d.addSource(s)
	}
}

// dependent is a listener that records its upstream cells so it can
// unsubscribe from them before re-tracking. Implemented by Effect,
// Memo, and component render scopes.
type dependent interface {
	Listener
	addSource(source *signalBase)
}

// Signal is a reactive value container. Reading a Signal inside a
// tracked context automatically subscribes the current listener.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// equal determines whether a write changed the value.
	// nil means default equality.
	equal func(T, T) bool

	// disposed signals read their last value and ignore writes.
	disposed atomic.Bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	if !s.disposed.Load() {
		s.base.track()
	}

	return value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
// Writes to a disposed signal are silent no-ops.
func (s *Signal[T]) Set(value T) {
	if s.disposed.Load() {
		return
	}

	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// Update atomically reads and updates the value.
func (s *Signal[T]) Update(fn func(T) T) {
	if s.disposed.Load() {
		return
	}

	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// Dispose detaches the signal from all subscribers. Subsequent reads
// return the last value; subsequent writes are ignored and never
// notify. Disposal is idempotent.
func (s *Signal[T]) Dispose() {
	if s.disposed.Swap(true) {
		return
	}
	s.base.subMu.Lock()
	s.base.subs = nil
	s.base.subMu.Unlock()
}

// WithEquals configures a custom equality function, for value types
// where reflect.DeepEqual is too expensive or has wrong semantics.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// AnyGet implements Source.
func (s *Signal[T]) AnyGet() any { return s.Get() }

// AnyPeek implements Source.
func (s *Signal[T]) AnyPeek() any { return s.Peek() }

// SubscriberCount reports how many listeners are subscribed.
func (s *Signal[T]) SubscriberCount() int { return s.base.SubscriberCount() }

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common scalar types and reflect.DeepEqual
// for everything else. When T is an interface type the two values may
// carry different dynamic types (a signal position switching between
// text and a subtree); those are never equal.
func defaultEquals[T any](a, b T) bool {
	if reflect.TypeOf(any(a)) != reflect.TypeOf(any(b)) {
		return false
	}
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}

var _ Source = (*Signal[int])(nil)
