package vdom

import (
	"fmt"
	"strconv"

	"github.com/filament-ui/filament/pkg/reactive"
)

// H builds an element VNode. Arguments may be attributes (Attr,
// []Attr, EventHandler), children (*VNode, []*VNode, []any, string,
// numeric, reactive.Source, Component, *Future), or nil. Children are
// normalized in one pass: nested slices flatten, nil and bool values
// drop, primitives become text nodes, sources become signal nodes.
//
// Any other shape panics with a construction error: malformed trees
// must fail at the call site, not propagate into reconciliation.
func H(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0, len(args)),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Allows conditional attributes and children.
		case Attr:
			applyAttr(node, v)
		case []Attr:
			for _, a := range v {
				applyAttr(node, a)
			}
		case EventHandler:
			node.Props["on"+v.Event] = v.Handler
		default:
			node.Children = appendChild(node.Children, arg)
		}
	}

	return node
}

// applyAttr stores an attribute on the node, routing the reserved
// "key" attribute to the Key field.
func applyAttr(node *VNode, a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		node.Key = fmt.Sprintf("%v", a.Value)
		return
	}
	node.Props[a.Key] = a.Value
}

// appendChild normalizes one child value and appends the result.
// Panics on unrecognized shapes.
func appendChild(children []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case nil:
		return children
	case bool:
		// Booleans render nothing; allows `cond && node` style helpers.
		return children
	case *VNode:
		if v != nil {
			return append(children, v)
		}
		return children
	case []*VNode:
		for _, c := range v {
			if c != nil {
				children = append(children, c)
			}
		}
		return children
	case []any:
		for _, c := range v {
			children = appendChild(children, c)
		}
		return children
	case string:
		return append(children, Text(v))
	case int:
		return append(children, Text(strconv.Itoa(v)))
	case int64:
		return append(children, Text(strconv.FormatInt(v, 10)))
	case float64:
		return append(children, Text(strconv.FormatFloat(v, 'f', -1, 64)))
	case reactive.Source:
		return append(children, Bind(v))
	case Component:
		return append(children, &VNode{Kind: KindComponent, Comp: v})
	case *Future:
		return append(children, &VNode{Kind: KindAsync, Future: v})
	default:
		panic(fmt.Sprintf("filament: cannot use %T as a vdom child", child))
	}
}

// Bind wraps a reactive source into a signal VNode. The source is not
// unwrapped here; the reconciler binds it at mount time so value
// changes re-render only that leaf position.
func Bind(src reactive.Source) *VNode {
	return &VNode{
		Kind:   KindSignal,
		Source: src,
	}
}

// Normalize converts a polymorphic producer value (component output,
// signal payload) into a single canonical VNode. Multiple children
// wrap into a fragment; nil-equivalent values return nil. Panics on
// unrecognized shapes, like H.
func Normalize(value any) *VNode {
	children := appendChild(nil, value)
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	default:
		return &VNode{Kind: KindFragment, Children: children}
	}
}
