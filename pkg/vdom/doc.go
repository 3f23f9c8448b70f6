// Package vdom defines the virtual node model: an immutable
// description of a render tree built with H and the element helpers.
//
// Heterogeneous inputs (primitives, slices, reactive sources,
// components, futures) are normalized into a canonical tree at
// construction time. Each node carries a closed kind tag, so the
// reconciler dispatches on VKind instead of inspecting runtime types.
// Unrecognized child shapes panic at the construction site.
package vdom
