// Package backend declares the capability surface a render target must
// provide. The reconciler only ever talks to a Backend; the concrete
// node representation behind each handle is opaque to it.
package backend

// Node is an opaque handle to a target-side node. Backends return
// handles from CreateElement and CreateText and receive them back in
// every structural call. The reconciler never inspects a handle.
type Node any

// Backend is the minimal mutation surface the reconciler drives.
// Implementations include the in-memory document (pkg/dom), the HTML
// string renderer (pkg/render), and the terminal compositor (pkg/term).
//
// Every call applies immediately. Backends that buffer (the live
// session recorder, the terminal frame scheduler) do so behind this
// interface.
type Backend interface {
	// CreateElement creates a detached element node.
	CreateElement(tag string) Node

	// CreateText creates a detached text node with initial content.
	CreateText(text string) Node

	// AppendChild attaches child as the last child of parent.
	AppendChild(parent, child Node)

	// InsertBefore attaches child into parent immediately before ref.
	// A nil ref is equivalent to AppendChild.
	InsertBefore(parent, child, ref Node)

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node)

	// SetProperty sets or replaces a property on an element. The
	// backend decides how a value maps onto its medium (attribute,
	// style, event subscription).
	SetProperty(node Node, key string, value any)

	// RemoveProperty clears a previously set property.
	RemoveProperty(node Node, key string)

	// SetTextContent replaces the content of a text node.
	SetTextContent(node Node, text string)

	// Destroy releases target-side resources held by a detached node.
	// Called after RemoveChild once the reconciler is done with the
	// handle; backends without per-node resources may no-op.
	Destroy(node Node)
}

// EventTarget is implemented by backends that can deliver user events
// back into the tree. The reconciler registers handlers through
// SetProperty with "on"-prefixed keys; EventTarget lets a driver
// synthesize an event against a handle.
type EventTarget interface {
	DispatchEvent(node Node, event string, payload any) bool
}
