package reconcile

import (
	"reflect"

	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vdom"
)

// patch reconciles a mounted position against a new vnode and returns
// the surviving shadow node. Identity is preserved when kind, tag, and
// the kind-specific anchor (signal source, component instance, future,
// portal target) agree; otherwise the subtree is replaced in place.
func (e *engine) patch(r *RenderedNode, next *vdom.VNode) *RenderedNode {
	if !sameIdentity(r, next) {
		return e.replace(r, next)
	}

	switch r.kind {
	case vdom.KindText, vdom.KindRaw:
		if r.vnode.Text != next.Text {
			e.be.SetTextContent(r.handle, next.Text)
		}

	case vdom.KindElement:
		e.patchProps(r, next)
		r.children = e.patchChildren(r.handle, nil, r.children, next.Children, r.effectScope())

	case vdom.KindFragment:
		r.children = e.patchChildren(r.parent, r.anchor, r.children, next.Children, r.scope)

	case vdom.KindContext:
		// Values are re-provided for future renders; consumers read
		// context at render time, so live subtrees keep the value they
		// rendered with unless something re-renders them.
		for _, p := range next.Provides {
			r.ownOwner.SetValue(p.Token, p.Value)
		}
		r.children = e.patchChildren(r.parent, r.anchor, r.children, next.Children, r.ownOwner)

	case vdom.KindPortal:
		r.children = e.patchChildren(next.Target, nil, r.children, next.Children, r.ownOwner)

	case vdom.KindSignal, vdom.KindComponent, vdom.KindAsync:
		// Same source, instance, or future: the live effect or reader
		// keeps driving the position, nothing structural to do.
	}

	r.vnode = next
	return r
}

// replace mounts next at the old position, then unmounts the old
// subtree.
func (e *engine) replace(r *RenderedNode, next *vdom.VNode) *RenderedNode {
	ref := r.firstHandle()
	mounted := e.mount(next, r.parent, ref, r.scope)
	e.unmount(r)
	return mounted
}

func sameIdentity(r *RenderedNode, next *vdom.VNode) bool {
	if r.kind != next.Kind {
		return false
	}
	switch r.kind {
	case vdom.KindElement:
		return r.vnode.Tag == next.Tag
	case vdom.KindSignal:
		return r.vnode.Source.ID() == next.Source.ID()
	case vdom.KindComponent:
		return safeEqual(r.vnode.Comp, next.Comp)
	case vdom.KindAsync:
		return r.vnode.Future == next.Future
	case vdom.KindPortal:
		return safeEqual(r.vnode.Target, next.Target)
	default:
		return true
	}
}

// patchProps diffs the prop maps. Static values write through on
// change, signal-valued props rebind only when the source changes, and
// removed keys clear both the property and any binding effect.
func (e *engine) patchProps(r *RenderedNode, next *vdom.VNode) {
	oldProps := r.vnode.Props
	newProps := next.Props

	for key := range oldProps {
		if _, ok := newProps[key]; ok {
			continue
		}
		e.unbindProp(r, key)
		e.be.RemoveProperty(r.handle, key)
	}

	for key, value := range newProps {
		oldValue, had := oldProps[key]

		if src, ok := value.(reactive.Source); ok {
			if had {
				if oldSrc, wasSrc := oldValue.(reactive.Source); wasSrc && oldSrc.ID() == src.ID() {
					continue
				}
			}
			e.unbindProp(r, key)
			e.bindProp(r, key, src)
			continue
		}

		if had {
			if _, wasSrc := oldValue.(reactive.Source); wasSrc {
				e.unbindProp(r, key)
			} else if safeEqual(oldValue, value) {
				continue
			}
		}
		e.be.SetProperty(r.handle, key, value)
	}
}

func (e *engine) unbindProp(r *RenderedNode, key string) {
	if eff, ok := r.propEffects[key]; ok {
		eff.Dispose()
		delete(r.propEffects, key)
	}
}

// safeEqual compares two values without panicking on uncomparable
// types. Uncomparable values (funcs, maps, slices) never compare equal,
// so handler props always rewrite.
func safeEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
