// Package dom provides an in-memory document tree implementing the
// backend capability surface. It backs headless rendering, tests, and
// live sessions, where a Recorder turns mutations into patch ops that
// mirror a browser-side tree over the wire.
package dom

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// NodeKind distinguishes element nodes from text nodes.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
)

// Node is a node in the in-memory document. Nodes are created through
// a Document and passed back to it as backend handles.
type Node struct {
	kind     NodeKind
	id       uint64
	tag      string
	text     string
	attrs    map[string]any
	handlers map[string]any
	parent   *Node
	children []*Node
}

// ID returns the document-assigned node id. Ids are stable for the
// life of the node and never reused within a document.
func (n *Node) ID() uint64 { return n.id }

// Kind returns whether this is an element or text node.
func (n *Node) Kind() NodeKind { return n.kind }

// Tag returns the element tag, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the text content of a text node.
func (n *Node) Text() string { return n.text }

// Parent returns the parent node, or nil for detached nodes and the
// document root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. The slice is shared; callers must
// not mutate it.
func (n *Node) Children() []*Node { return n.children }

// Attr returns the value of an attribute and whether it is set.
func (n *Node) Attr(key string) (any, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Handler returns the registered handler for an event, or nil.
func (n *Node) Handler(event string) any { return n.handlers[event] }

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) insertAt(i int, child *Node) {
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
}

func (n *Node) removeChild(child *Node) bool {
	i := n.indexOf(child)
	if i < 0 {
		return false
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
	return true
}

// TextContent returns the concatenated text of this node's subtree.
func (n *Node) TextContent() string {
	if n.kind == TextNode {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// OuterHTML serializes the subtree rooted at this node. Attributes are
// emitted in sorted order so output is deterministic for comparison.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

// InnerHTML serializes the node's children.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for _, c := range n.children {
		c.writeHTML(&b)
	}
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	if n.kind == TextNode {
		b.WriteString(html.EscapeString(n.text))
		return
	}
	if n.tag == rootTag {
		for _, c := range n.children {
			c.writeHTML(b)
		}
		return
	}
	b.WriteByte('<')
	b.WriteString(n.tag)
	if len(n.attrs) > 0 {
		keys := make([]string, 0, len(n.attrs))
		for k := range n.attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeAttr(b, k, n.attrs[k])
		}
	}
	b.WriteByte('>')
	for _, c := range n.children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
}

func writeAttr(b *strings.Builder, key string, value any) {
	switch v := value.(type) {
	case bool:
		if v {
			b.WriteByte(' ')
			b.WriteString(key)
		}
	case nil:
	default:
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(fmt.Sprintf("%v", v)))
		b.WriteByte('"')
	}
}
