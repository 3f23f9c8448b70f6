// Package reconcile mounts vdom trees onto a backend and keeps them in
// sync with reactive state. It maintains a shadow tree of RenderedNode
// values that own the backend handles, the reactive scopes, and the
// per-position state (signal bindings, component render effects,
// pending futures) for each mounted vnode.
//
// Updates flow two ways. Signal leaves and signal-valued props bypass
// diffing entirely: a dedicated effect writes the new value straight to
// the backend handle. Structural changes (component re-renders, new
// trees passed to a position) go through the patch decision table,
// which preserves node identity where kind, tag, and key agree and
// replaces the subtree where they do not.
package reconcile
