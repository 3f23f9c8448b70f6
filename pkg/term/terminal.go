package term

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/filament-ui/filament/pkg/backend"
)

// Terminal is a render target that composes the mounted tree into
// styled lines and paints them to a writer. It implements the backend
// capability surface, so the reconciler drives it exactly like a
// document tree.
type Terminal struct {
	mu     sync.Mutex
	out    *termenv.Output
	layout Layout
	root   *Node
	dirty  bool
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithLayout replaces the default flow layout.
func WithLayout(l Layout) Option {
	return func(t *Terminal) { t.layout = l }
}

// WithProfile forces a termenv color profile instead of detecting one.
func WithProfile(p termenv.Profile) Option {
	return func(t *Terminal) { t.out = termenv.NewOutput(t.out.Writer(), termenv.WithProfile(p)) }
}

// New creates a Terminal over w. Color support is detected: a real
// tty gets the environment's color profile, pipes and buffers get
// plain text.
func New(w io.Writer, opts ...Option) *Terminal {
	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		profile = termenv.EnvColorProfile()
	}

	t := &Terminal{
		out:    termenv.NewOutput(w, termenv.WithProfile(profile)),
		layout: &FlowLayout{},
		root:   &Node{kind: elementNode, tag: "#screen"},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the screen root handle to mount into.
func (t *Terminal) Root() *Node { return t.root }

// Dirty reports whether the tree changed since the last Paint.
func (t *Terminal) Dirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty
}

// Frame composes and styles the current tree without writing it.
func (t *Terminal) Frame() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.compose()
}

// Paint writes the current frame to the output, clearing the screen
// first on capable terminals. Returns the painted frame.
func (t *Terminal) Paint() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	frame := t.compose()
	if t.out.Profile != termenv.Ascii {
		t.out.ClearScreen()
	}
	t.out.WriteString(frame)
	t.dirty = false
	return frame
}

func (t *Terminal) compose() string {
	lines := t.layout.Compose(t.root)
	rendered := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		for _, seg := range line {
			b.WriteString(t.styled(seg))
		}
		rendered[i] = b.String()
	}
	return strings.Join(rendered, "\n")
}

func (t *Terminal) styled(seg Segment) string {
	s := t.out.String(seg.Text)
	if seg.Style.Foreground != "" {
		s = s.Foreground(t.out.Color(seg.Style.Foreground))
	}
	if seg.Style.Background != "" {
		s = s.Background(t.out.Color(seg.Style.Background))
	}
	if seg.Style.Bold {
		s = s.Bold()
	}
	if seg.Style.Faint {
		s = s.Faint()
	}
	if seg.Style.Italic {
		s = s.Italic()
	}
	if seg.Style.Underline {
		s = s.Underline()
	}
	return s.String()
}

func (t *Terminal) touch() { t.dirty = true }

// CreateElement implements backend.Backend.
func (t *Terminal) CreateElement(tag string) backend.Node {
	return &Node{kind: elementNode, tag: tag, props: make(map[string]any)}
}

// CreateText implements backend.Backend.
func (t *Terminal) CreateText(text string) backend.Node {
	return &Node{kind: textNode, text: text}
}

// AppendChild implements backend.Backend.
func (t *Terminal) AppendChild(parent, child backend.Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, c := parent.(*Node), child.(*Node)
	c.detach()
	p.children = append(p.children, c)
	c.parent = p
	t.touch()
}

// InsertBefore implements backend.Backend.
func (t *Terminal) InsertBefore(parent, child, ref backend.Node) {
	if ref == nil {
		t.AppendChild(parent, child)
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p, c, r := parent.(*Node), child.(*Node), ref.(*Node)
	c.detach()
	i := p.indexOf(r)
	if i < 0 {
		p.children = append(p.children, c)
	} else {
		p.children = append(p.children, nil)
		copy(p.children[i+1:], p.children[i:])
		p.children[i] = c
	}
	c.parent = p
	t.touch()
}

// RemoveChild implements backend.Backend.
func (t *Terminal) RemoveChild(parent, child backend.Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := child.(*Node)
	if c.parent == parent.(*Node) {
		c.detach()
	}
	t.touch()
}

// SetProperty implements backend.Backend. Style props (fg, bg, bold,
// faint, italic, underline) feed the layout; "on"-prefixed props
// register input handlers.
func (t *Terminal) SetProperty(node backend.Node, key string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := node.(*Node)
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[key] = value
	t.touch()
}

// RemoveProperty implements backend.Backend.
func (t *Terminal) RemoveProperty(node backend.Node, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(node.(*Node).props, key)
	t.touch()
}

// SetTextContent implements backend.Backend.
func (t *Terminal) SetTextContent(node backend.Node, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	node.(*Node).text = text
	t.touch()
}

// Destroy implements backend.Backend. Terminal nodes hold no
// out-of-tree resources.
func (t *Terminal) Destroy(node backend.Node) {}

// DispatchEvent implements backend.EventTarget, delivering key or
// focus events to a node's registered handler.
func (t *Terminal) DispatchEvent(node backend.Node, event string, payload any) bool {
	t.mu.Lock()
	h := node.(*Node).props["on"+event]
	t.mu.Unlock()
	if h == nil {
		return false
	}
	switch fn := h.(type) {
	case func():
		fn()
	case func(any):
		fn(payload)
	default:
		return false
	}
	return true
}
