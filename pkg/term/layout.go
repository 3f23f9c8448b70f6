package term

// Style is the paintable style of a text run, resolved from element
// props and inherited down the tree.
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Faint      bool
	Italic     bool
	Underline  bool
}

// merged returns s overlaid with the style props of a node.
func (s Style) merged(n *Node) Style {
	if v, ok := n.props["fg"].(string); ok {
		s.Foreground = v
	}
	if v, ok := n.props["bg"].(string); ok {
		s.Background = v
	}
	if v, ok := n.props["bold"].(bool); ok {
		s.Bold = v
	}
	if v, ok := n.props["faint"].(bool); ok {
		s.Faint = v
	}
	if v, ok := n.props["italic"].(bool); ok {
		s.Italic = v
	}
	if v, ok := n.props["underline"].(bool); ok {
		s.Underline = v
	}
	return s
}

// Segment is a styled run of text within a line.
type Segment struct {
	Text  string
	Style Style
}

// Line is one row of composed output.
type Line []Segment

// Text returns the unstyled content of the line.
func (l Line) Text() string {
	var out string
	for _, seg := range l {
		out += seg.Text
	}
	return out
}

// Layout composes a node tree into lines. The default FlowLayout
// treats block tags as line breaks and flows everything else; richer
// layouts (grids, panes) can be swapped in per terminal.
type Layout interface {
	Compose(root *Node) []Line
}

// FlowLayout is the default document-flow layout.
type FlowLayout struct {
	// ListMarker prefixes li content. Defaults to "- " when empty
	// and the parent is a list.
	ListMarker string
}

// Compose implements Layout.
func (f *FlowLayout) Compose(root *Node) []Line {
	c := &composer{marker: f.ListMarker}
	if c.marker == "" {
		c.marker = "- "
	}
	c.walk(root, Style{})
	c.endLine()
	return c.lines
}

type composer struct {
	lines   []Line
	current Line
	marker  string
}

func (c *composer) endLine() {
	if len(c.current) > 0 {
		c.lines = append(c.lines, c.current)
		c.current = nil
	}
}

func (c *composer) emit(text string, style Style) {
	if text == "" {
		return
	}
	c.current = append(c.current, Segment{Text: text, Style: style})
}

func (c *composer) walk(n *Node, inherited Style) {
	if n.kind == textNode {
		c.emit(n.text, inherited)
		return
	}

	style := inherited.merged(n)
	block := isBlock(n.tag)
	if block {
		c.endLine()
	}
	if n.tag == "li" {
		c.emit(c.marker, style)
	}
	if n.tag == "br" {
		c.endLine()
		return
	}

	for _, child := range n.children {
		c.walk(child, style)
	}

	if block {
		c.endLine()
	}
}
