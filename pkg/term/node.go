package term

import "strings"

// nodeKind distinguishes element nodes from text nodes.
type nodeKind uint8

const (
	elementNode nodeKind = iota
	textNode
)

// Node is a node in the terminal tree. Tags carry layout roles rather
// than HTML semantics: block tags break lines, inline tags flow.
type Node struct {
	kind     nodeKind
	tag      string
	text     string
	props    map[string]any
	parent   *Node
	children []*Node
}

// Tag returns the element tag, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the content of a text node.
func (n *Node) Text() string { return n.text }

// Children returns the child list.
func (n *Node) Children() []*Node { return n.children }

// Prop returns a style or layout property.
func (n *Node) Prop(key string) (any, bool) {
	v, ok := n.props[key]
	return v, ok
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	if i := n.parent.indexOf(n); i >= 0 {
		n.parent.children = append(n.parent.children[:i], n.parent.children[i+1:]...)
	}
	n.parent = nil
}

// textContent concatenates the subtree's text.
func (n *Node) textContent() string {
	if n.kind == textNode {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.textContent())
	}
	return b.String()
}

// blockTags are tags that start on a fresh line in the default layout.
var blockTags = map[string]bool{
	"div":  true,
	"main": true,
	"nav":  true,
	"h1":   true,
	"h2":   true,
	"h3":   true,
	"p":    true,
	"pre":  true,
	"ul":   true,
	"ol":   true,
	"li":   true,
	"form": true,
	"table": true,
	"tr":   true,
}

func isBlock(tag string) bool { return blockTags[tag] }
