package reconcile

import (
	"github.com/filament-ui/filament/pkg/backend"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vdom"
)

// RenderedNode is one node of the shadow tree. It pairs the vnode that
// described it with the live state produced by mounting it: backend
// handles, child rendered nodes, and the reactive scope that owns its
// effects.
type RenderedNode struct {
	vnode *vdom.VNode
	kind  vdom.VKind

	// handle is the backend node for element and text kinds. For
	// signal, component, and async kinds it is the persistent text
	// node that doubles as the position anchor.
	handle backend.Node

	// anchor marks the end of a container position (fragment, context,
	// portal) so later siblings can be inserted before it.
	anchor backend.Node

	// parent is the backend node this position's output attaches to.
	parent backend.Node

	// children are the rendered child positions, in order. For
	// portals these live under the portal target, not under parent.
	children []*RenderedNode

	// dynamic is the mounted result subtree for signal, component,
	// and async positions.
	dynamic *RenderedNode

	// scope is the reactive owner in effect when this node mounted.
	// ownOwner is non-nil when the node created its own scope
	// (components, context providers, bound elements); unmount
	// disposes ownOwner only.
	scope    *reactive.Owner
	ownOwner *reactive.Owner

	// renderScope is the per-run owner of a component render, replaced
	// on every re-render so stale effects are released.
	renderScope *reactive.Owner

	// propEffects holds the binding effect per signal-valued prop.
	propEffects map[string]*reactive.Effect

	// hasText is set while a signal position is showing primitive text
	// through its anchor node.
	hasText bool

	unmounted bool
}

// VNode returns the vnode this rendered node was mounted from.
func (r *RenderedNode) VNode() *vdom.VNode { return r.vnode }

// Handle returns the primary backend handle, if the node has one.
func (r *RenderedNode) Handle() backend.Node { return r.handle }

// effectScope returns the owner new effects under this node belong to.
func (r *RenderedNode) effectScope() *reactive.Owner {
	if r.ownOwner != nil {
		return r.ownOwner
	}
	return r.scope
}

// appendHandles collects the top-level backend handles this position
// occupies in its parent, in document order. Used to compute insertion
// references and to move whole subtrees.
func (r *RenderedNode) appendHandles(out *[]backend.Node) {
	switch r.kind {
	case vdom.KindElement, vdom.KindText, vdom.KindRaw:
		*out = append(*out, r.handle)
	case vdom.KindSignal, vdom.KindComponent, vdom.KindAsync:
		if r.dynamic != nil {
			r.dynamic.appendHandles(out)
		}
		*out = append(*out, r.handle)
	case vdom.KindFragment, vdom.KindContext:
		for _, c := range r.children {
			c.appendHandles(out)
		}
		*out = append(*out, r.anchor)
	case vdom.KindPortal:
		// Portal output lives under the target; only the anchor
		// occupies the home position.
		*out = append(*out, r.anchor)
	}
}

// firstHandle returns the first backend handle of this position, used
// as the insertion reference when a sibling is placed before it.
func (r *RenderedNode) firstHandle() backend.Node {
	var handles []backend.Node
	r.appendHandles(&handles)
	if len(handles) == 0 {
		return nil
	}
	return handles[0]
}
