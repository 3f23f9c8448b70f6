package reconcile

import (
	"log"

	"github.com/filament-ui/filament/pkg/backend"
	"github.com/filament-ui/filament/pkg/dom"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vdom"
)

// Hydrate adopts a server-rendered tree already present under
// container instead of rebuilding it: existing elements and text nodes
// become the backend handles, event handlers and signal bindings
// attach to them, and only positions the markup cannot express
// (anchors, portals, async placeholders) create new nodes.
//
// Where the markup does not match the tree being mounted, the
// remainder of that position is discarded and mounted fresh.
//
// A nil or empty container means there is nothing to adopt; Hydrate
// logs a warning and returns nil rather than mounting blind.
func Hydrate(doc *dom.Document, container *dom.Node, content any) *Root {
	if container == nil || len(container.Children()) == 0 {
		log.Printf("filament: hydrate: container is empty, nothing to adopt")
		return nil
	}
	root := &Root{
		be:        doc,
		container: container,
		owner:     reactive.NewOwner(nil),
		tasks:     make(chan rootTask),
		quit:      make(chan struct{}),
	}
	root.engine = &engine{be: doc, root: root}

	if next := vdom.Normalize(content); next != nil {
		h := &hydrator{e: root.engine, doc: doc}
		cursor := 0
		reactive.WithOwner(root.owner, func() {
			root.rendered = h.hydrate(next, container, &cursor, root.owner)
		})
	}

	root.wg.Add(1)
	go root.loop()
	return root
}

type hydrator struct {
	e   *engine
	doc *dom.Document
}

func childAt(parent *dom.Node, i int) *dom.Node {
	children := parent.Children()
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

func refAt(parent *dom.Node, i int) backend.Node {
	if c := childAt(parent, i); c != nil {
		return c
	}
	return nil
}

// remount discards the rest of the position and mounts fresh. Fallback
// for markup that does not line up with the tree.
func (h *hydrator) remount(v *vdom.VNode, parent *dom.Node, cursor *int, owner *reactive.Owner) *RenderedNode {
	log.Printf("filament: hydrate: markup mismatch under <%s>, recreating subtree", parent.Tag())
	for {
		c := childAt(parent, *cursor)
		if c == nil {
			break
		}
		h.e.be.RemoveChild(parent, c)
		h.e.be.Destroy(c)
	}
	r := h.e.mount(v, parent, nil, owner)
	*cursor = len(parent.Children())
	return r
}

func (h *hydrator) hydrate(v *vdom.VNode, parent *dom.Node, cursor *int, owner *reactive.Owner) *RenderedNode {
	r := &RenderedNode{
		vnode:  v,
		kind:   v.Kind,
		parent: parent,
		scope:  owner,
	}

	switch v.Kind {
	case vdom.KindText, vdom.KindRaw:
		existing := childAt(parent, *cursor)
		if existing == nil || existing.Kind() != dom.TextNode {
			return h.remount(v, parent, cursor, owner)
		}
		r.handle = existing
		if existing.Text() != v.Text {
			h.e.be.SetTextContent(existing, v.Text)
		}
		*cursor++

	case vdom.KindElement:
		existing := childAt(parent, *cursor)
		if existing == nil || existing.Kind() != dom.ElementNode || existing.Tag() != v.Tag {
			return h.remount(v, parent, cursor, owner)
		}
		r.handle = existing
		h.hydrateProps(r, v)
		childCursor := 0
		childOwner := r.effectScope()
		for _, c := range v.Children {
			r.children = append(r.children, h.hydrate(c, existing, &childCursor, childOwner))
		}
		*cursor++

	case vdom.KindSignal:
		existing := childAt(parent, *cursor)
		if existing == nil || existing.Kind() != dom.TextNode {
			return h.remount(v, parent, cursor, owner)
		}
		// The rendered text node becomes the live anchor; the binding
		// effect takes over from the server-rendered value.
		r.handle = existing
		r.hasText = true
		*cursor++
		r.ownOwner = reactive.NewOwner(owner)
		reactive.WithOwner(r.ownOwner, func() {
			reactive.NewEffect(func() reactive.Cleanup {
				value := v.Source.AnyGet()
				reactive.Untracked(func() {
					h.e.applyDynamicValue(r, value)
				})
				return nil
			})
		})

	case vdom.KindComponent:
		h.hydrateComponent(r, v, parent, cursor, owner)

	case vdom.KindFragment:
		for _, c := range v.Children {
			r.children = append(r.children, h.hydrate(c, parent, cursor, owner))
		}
		r.anchor = h.e.be.CreateText("")
		h.e.be.InsertBefore(parent, r.anchor, refAt(parent, *cursor))
		*cursor++

	case vdom.KindContext:
		r.ownOwner = reactive.NewOwner(owner)
		for _, p := range v.Provides {
			r.ownOwner.SetValue(p.Token, p.Value)
		}
		for _, c := range v.Children {
			r.children = append(r.children, h.hydrate(c, parent, cursor, r.ownOwner))
		}
		r.anchor = h.e.be.CreateText("")
		h.e.be.InsertBefore(parent, r.anchor, refAt(parent, *cursor))
		*cursor++

	case vdom.KindPortal:
		// Server markup renders portal content in place; drop that
		// placeholder and mount into the real target.
		if existing := childAt(parent, *cursor); existing != nil {
			if _, ok := existing.Attr("data-portal"); ok {
				h.e.be.RemoveChild(parent, existing)
				h.e.be.Destroy(existing)
			}
		}
		r.ownOwner = reactive.NewOwner(owner)
		r.anchor = h.e.be.CreateText("")
		h.e.be.InsertBefore(parent, r.anchor, refAt(parent, *cursor))
		*cursor++
		target := v.Target.(backend.Node)
		for _, c := range v.Children {
			r.children = append(r.children, h.e.mount(c, target, nil, r.ownOwner))
		}

	case vdom.KindAsync:
		// Pending futures render nothing on the server; mount live.
		mounted := h.e.mount(v, parent, refAt(parent, *cursor), owner)
		*cursor++
		return mounted

	default:
		return h.remount(v, parent, cursor, owner)
	}

	return r
}

// hydrateProps attaches the live parts of an element's props: event
// handlers and signal bindings. Static values are already present in
// the server markup and are left alone.
func (h *hydrator) hydrateProps(r *RenderedNode, v *vdom.VNode) {
	for key, value := range v.Props {
		if src, ok := value.(reactive.Source); ok {
			h.e.bindProp(r, key, src)
			continue
		}
		if len(key) > 2 && key[:2] == "on" {
			h.e.be.SetProperty(r.handle, key, value)
		}
	}
}

func (h *hydrator) hydrateComponent(r *RenderedNode, v *vdom.VNode, parent *dom.Node, cursor *int, owner *reactive.Owner) {
	r.ownOwner = reactive.NewOwner(owner)
	hydrating := true

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

			if hydrating {
				hydrating = false
				reactive.Untracked(func() {
					h.adoptComponentOutput(r, out, parent, cursor)
				})
				return nil
			}
			reactive.Untracked(func() {
				h.e.applyDynamicValue(r, out)
			})
			return nil
		})
	})
}

func (h *hydrator) adoptComponentOutput(r *RenderedNode, out any, parent *dom.Node, cursor *int) {
	if text, ok := primitiveText(out); ok {
		existing := childAt(parent, *cursor)
		if existing != nil && existing.Kind() == dom.TextNode {
			r.handle = existing
			r.hasText = true
			if existing.Text() != text {
				h.e.be.SetTextContent(existing, text)
			}
			*cursor++
			return
		}
		r.handle = h.e.be.CreateText(text)
		r.hasText = true
		h.e.be.InsertBefore(parent, r.handle, refAt(parent, *cursor))
		*cursor++
		return
	}

	if next := vdom.Normalize(out); next != nil {
		r.dynamic = h.hydrate(next, parent, cursor, r.ownOwner)
	}
	r.handle = h.e.be.CreateText("")
	h.e.be.InsertBefore(parent, r.handle, refAt(parent, *cursor))
	*cursor++
}
