package vdom

import (
	"strings"

	"github.com/filament-ui/filament/pkg/reactive"
)

// VKind is the node type discriminator. The set is closed: every child
// shape is resolved to one of these at construction time, so the
// reconciler never inspects runtime types.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindSignal                 // Live binding to a reactive.Source
	KindComponent              // Nested component
	KindFragment               // Grouping without wrapper
	KindPortal                 // Children render into another target
	KindContext                // Provides context values to descendants
	KindAsync                  // Pending or streaming content
	KindRaw                    // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindSignal:
		return "Signal"
	case KindComponent:
		return "Component"
	case KindFragment:
		return "Fragment"
	case KindPortal:
		return "Portal"
	case KindContext:
		return "Context"
	case KindAsync:
		return "Async"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is an immutable description of a render-tree node. It is pure
// data: it never references live output nodes.
type VNode struct {
	Kind     VKind
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes, live bindings, event handlers
	Children []*VNode // Normalized child nodes
	Key      string   // Reconciliation key, scoped to siblings
	Text     string   // For KindText and KindRaw

	Source reactive.Source // For KindSignal
	Comp   Component       // For KindComponent

	Target any // For KindPortal: output node handle to mount into

	Provides []Provided // For KindContext

	Future *Future // For KindAsync
}

// Props holds attributes, event handlers, and live signal bindings.
// A value that implements reactive.Source is bound reactively at mount.
type Props map[string]any

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty reports whether this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler pairs an event name with its handler function.
type EventHandler struct {
	Event   string // "click", "input", etc.
	Handler any
}

// Provided is one token/value pair carried by a context node.
type Provided struct {
	Token *ContextToken
	Value any
}

// Component is anything that can render. The returned value may be a
// *VNode, a primitive, a []*VNode, a reactive.Source, or a *Future;
// it is normalized before reconciliation.
type Component interface {
	Render() any
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() any
}

// Render implements Component.
func (f *FuncComponent) Render() any {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() any) Component {
	return &FuncComponent{render: render}
}

// IsInteractive reports whether the node carries event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if strings.HasPrefix(key, "on") {
			return true
		}
	}
	return false
}

// IsVNode reports whether value is a *VNode. Producers are polymorphic
// (helpers, component returns, manual construction) and must be
// recognized uniformly.
func IsVNode(value any) bool {
	n, ok := value.(*VNode)
	return ok && n != nil
}
