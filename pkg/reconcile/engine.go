package reconcile

import (
	"fmt"
	"strconv"

	"github.com/filament-ui/filament/pkg/backend"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vdom"
)

// engine drives one backend on behalf of one root. All structural
// mutations go through it so the shadow tree and the backend never
// disagree.
type engine struct {
	be   backend.Backend
	root *Root
}

// mount renders v into parent before ref (nil ref appends) and returns
// the shadow node that owns the result. owner is the reactive scope
// the position belongs to.
func (e *engine) mount(v *vdom.VNode, parent, ref backend.Node, owner *reactive.Owner) *RenderedNode {
	r := &RenderedNode{
		vnode:  v,
		kind:   v.Kind,
		parent: parent,
		scope:  owner,
	}

	switch v.Kind {
	case vdom.KindText, vdom.KindRaw:
		// Structural backends have no raw-HTML notion; raw content is
		// carried as text and only the string renderer emits it
		// unescaped.
		r.handle = e.be.CreateText(v.Text)
		e.be.InsertBefore(parent, r.handle, ref)

	case vdom.KindElement:
		e.mountElement(r, v, parent, ref, owner)

	case vdom.KindSignal:
		e.mountSignal(r, v, parent, ref, owner)

	case vdom.KindComponent:
		e.mountComponent(r, v, parent, ref, owner)

	case vdom.KindAsync:
		e.mountAsync(r, v, parent, ref, owner)

	case vdom.KindFragment:
		r.anchor = e.be.CreateText("")
		e.be.InsertBefore(parent, r.anchor, ref)
		for _, c := range v.Children {
			r.children = append(r.children, e.mount(c, parent, r.anchor, owner))
		}

	case vdom.KindContext:
		r.ownOwner = reactive.NewOwner(owner)
		for _, p := range v.Provides {
			r.ownOwner.SetValue(p.Token, p.Value)
		}
		r.anchor = e.be.CreateText("")
		e.be.InsertBefore(parent, r.anchor, ref)
		for _, c := range v.Children {
			r.children = append(r.children, e.mount(c, parent, r.anchor, r.ownOwner))
		}

	case vdom.KindPortal:
		// The anchor keeps the home position; output goes to the
		// target. The owner chain still runs through the home
		// position, so context and disposal follow the logical tree.
		r.ownOwner = reactive.NewOwner(owner)
		r.anchor = e.be.CreateText("")
		e.be.InsertBefore(parent, r.anchor, ref)
		target := v.Target.(backend.Node)
		for _, c := range v.Children {
			r.children = append(r.children, e.mount(c, target, nil, r.ownOwner))
		}

	default:
		panic(fmt.Sprintf("filament: cannot mount node of kind %v", v.Kind))
	}

	return r
}

func (e *engine) mountElement(r *RenderedNode, v *vdom.VNode, parent, ref backend.Node, owner *reactive.Owner) {
	r.handle = e.be.CreateElement(v.Tag)

	for key, value := range v.Props {
		if src, ok := value.(reactive.Source); ok {
			e.bindProp(r, key, src)
			continue
		}
		e.be.SetProperty(r.handle, key, value)
	}

	childOwner := r.effectScope()
	for _, c := range v.Children {
		r.children = append(r.children, e.mount(c, r.handle, nil, childOwner))
	}

	e.be.InsertBefore(parent, r.handle, ref)
}

// bindProp wires a signal-valued prop: a dedicated effect writes each
// new value straight to the handle, bypassing the diff entirely.
func (e *engine) bindProp(r *RenderedNode, key string, src reactive.Source) {
	if r.ownOwner == nil {
		r.ownOwner = reactive.NewOwner(r.scope)
	}
	if r.propEffects == nil {
		r.propEffects = make(map[string]*reactive.Effect)
	}
	reactive.WithOwner(r.ownOwner, func() {
		r.propEffects[key] = reactive.NewEffect(func() reactive.Cleanup {
			value := src.AnyGet()
			e.be.SetProperty(r.handle, key, value)
			return nil
		})
	})
}

// mountSignal renders a live leaf. The persistent text node doubles as
// the position anchor: primitive values update it in place with a
// single SetTextContent, structural values mount a subtree before it.
func (e *engine) mountSignal(r *RenderedNode, v *vdom.VNode, parent, ref backend.Node, owner *reactive.Owner) {
	r.handle = e.be.CreateText("")
	e.be.InsertBefore(parent, r.handle, ref)

	r.ownOwner = reactive.NewOwner(owner)
	reactive.WithOwner(r.ownOwner, func() {
		reactive.NewEffect(func() reactive.Cleanup {
			value := v.Source.AnyGet()
			reactive.Untracked(func() {
				e.applyDynamicValue(r, value)
			})
			return nil
		})
	})
}

// mountComponent renders a nested component. Each run of the render
// effect gets a fresh owner scope, so effects and cleanups registered
// inside Render are released before the next run.
func (e *engine) mountComponent(r *RenderedNode, v *vdom.VNode, parent, ref backend.Node, owner *reactive.Owner) {
	r.handle = e.be.CreateText("")
	e.be.InsertBefore(parent, r.handle, ref)

	r.ownOwner = reactive.NewOwner(owner)
	reactive.WithOwner(r.ownOwner, func() {
		reactive.NewEffect(func() reactive.Cleanup {
			if r.renderScope != nil {
				r.renderScope.Dispose()
			}
			r.renderScope = reactive.NewOwner(r.ownOwner)

			var out any
			reactive.WithOwner(r.renderScope, func() {
				out = v.Comp.Render()
			})

			reactive.Untracked(func() {
				e.applyDynamicValue(r, out)
			})
			return nil
		})
	})
}

// mountAsync renders a future position. Pending futures show nothing;
// values are applied on the root's update goroutine, in arrival order,
// and dropped once the position unmounts.
func (e *engine) mountAsync(r *RenderedNode, v *vdom.VNode, parent, ref backend.Node, owner *reactive.Owner) {
	r.handle = e.be.CreateText("")
	e.be.InsertBefore(parent, r.handle, ref)

	r.ownOwner = reactive.NewOwner(owner)
	stop := make(chan struct{})
	r.ownOwner.OnCleanup(func() { close(stop) })

	future := v.Future
	go func() {
		for {
			select {
			case <-stop:
				return
			case value, ok := <-future.C:
				if !ok {
					return
				}
				e.root.Dispatch(func() {
					if r.unmounted {
						return
					}
					e.applyDynamicValue(r, value)
				})
				if !future.Stream {
					return
				}
			}
		}
	}()
}

// applyDynamicValue reconciles the payload of a signal, component, or
// async position against what the position currently shows.
func (e *engine) applyDynamicValue(r *RenderedNode, value any) {
	if text, ok := primitiveText(value); ok {
		if r.dynamic != nil {
			e.unmount(r.dynamic)
			r.dynamic = nil
		}
		e.be.SetTextContent(r.handle, text)
		r.hasText = true
		return
	}

	next := vdom.Normalize(value)
	if r.hasText {
		e.be.SetTextContent(r.handle, "")
		r.hasText = false
	}
	if next == nil {
		if r.dynamic != nil {
			e.unmount(r.dynamic)
			r.dynamic = nil
		}
		return
	}
	if r.dynamic == nil {
		r.dynamic = e.mount(next, r.parent, r.handle, r.effectScope())
		return
	}
	r.dynamic = e.patch(r.dynamic, next)
}

// primitiveText reports whether a dynamic payload is plain text and
// returns its rendering.
func primitiveText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

// unmount tears a position down: reactive scopes first, then portal
// output under foreign targets, then the handles at the home position.
func (e *engine) unmount(r *RenderedNode) {
	if r.unmounted {
		return
	}
	e.release(r)
	e.detachPortalOutput(r)

	var handles []backend.Node
	r.appendHandles(&handles)
	for _, h := range handles {
		e.be.RemoveChild(r.parent, h)
		e.be.Destroy(h)
	}
}

// release disposes reactive scopes depth-first and marks the subtree
// unmounted so late async values are discarded.
func (e *engine) release(r *RenderedNode) {
	if r.unmounted {
		return
	}
	r.unmounted = true
	if r.dynamic != nil {
		e.release(r.dynamic)
	}
	for _, c := range r.children {
		e.release(c)
	}
	if r.ownOwner != nil {
		r.ownOwner.Dispose()
	}
}

// detachPortalOutput removes backend output that lives outside the
// home subtree, i.e. portal children mounted under other targets.
func (e *engine) detachPortalOutput(r *RenderedNode) {
	if r.kind == vdom.KindPortal {
		for _, c := range r.children {
			var handles []backend.Node
			c.appendHandles(&handles)
			for _, h := range handles {
				e.be.RemoveChild(c.parent, h)
				e.be.Destroy(h)
			}
			e.detachPortalOutput(c)
		}
		return
	}
	for _, c := range r.children {
		e.detachPortalOutput(c)
	}
	if r.dynamic != nil {
		e.detachPortalOutput(r.dynamic)
	}
}
