package dom

import (
	"strings"
	"sync"

	"github.com/filament-ui/filament/pkg/backend"
)

// rootTag marks the synthetic document root; it is never serialized.
const rootTag = "#document"

// Document is an in-memory tree implementing backend.Backend. It is
// safe for use from a single goroutine, matching the reconciler's
// single-writer discipline; the id table is locked because live
// sessions look nodes up from their read loop.
type Document struct {
	root   *Node
	nextID uint64

	mu   sync.RWMutex
	byID map[uint64]*Node
}

// NewDocument creates an empty document with a synthetic root node.
func NewDocument() *Document {
	d := &Document{byID: make(map[uint64]*Node)}
	d.root = d.register(&Node{kind: ElementNode, tag: rootTag})
	return d
}

// Root returns the synthetic document root.
func (d *Document) Root() *Node { return d.root }

// ByID returns the node with the given id, or nil.
func (d *Document) ByID(id uint64) *Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byID[id]
}

// GetElementByID returns the first element whose "id" attribute equals
// id, searching depth-first.
func (d *Document) GetElementByID(id string) *Node {
	return findByAttr(d.root, "id", id)
}

func findByAttr(n *Node, key, want string) *Node {
	if v, ok := n.attrs[key]; ok {
		if s, ok := v.(string); ok && s == want {
			return n
		}
	}
	for _, c := range n.children {
		if found := findByAttr(c, key, want); found != nil {
			return found
		}
	}
	return nil
}

func (d *Document) register(n *Node) *Node {
	d.mu.Lock()
	d.nextID++
	n.id = d.nextID
	d.byID[n.id] = n
	d.mu.Unlock()
	return n
}

// CreateElement implements backend.Backend.
func (d *Document) CreateElement(tag string) backend.Node {
	return d.register(&Node{
		kind:  ElementNode,
		tag:   tag,
		attrs: make(map[string]any),
	})
}

// CreateText implements backend.Backend.
func (d *Document) CreateText(text string) backend.Node {
	return d.register(&Node{kind: TextNode, text: text})
}

// AppendChild implements backend.Backend.
func (d *Document) AppendChild(parent, child backend.Node) {
	p, c := parent.(*Node), child.(*Node)
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	p.children = append(p.children, c)
	c.parent = p
}

// InsertBefore implements backend.Backend. A nil ref appends.
func (d *Document) InsertBefore(parent, child, ref backend.Node) {
	if ref == nil {
		d.AppendChild(parent, child)
		return
	}
	p, c, r := parent.(*Node), child.(*Node), ref.(*Node)
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	i := p.indexOf(r)
	if i < 0 {
		p.children = append(p.children, c)
		c.parent = p
		return
	}
	p.insertAt(i, c)
}

// RemoveChild implements backend.Backend.
func (d *Document) RemoveChild(parent, child backend.Node) {
	parent.(*Node).removeChild(child.(*Node))
}

// SetProperty implements backend.Backend. Keys with an "on" prefix
// register event handlers; everything else is stored as an attribute.
func (d *Document) SetProperty(node backend.Node, key string, value any) {
	n := node.(*Node)
	if event, ok := eventName(key); ok {
		if n.handlers == nil {
			n.handlers = make(map[string]any)
		}
		n.handlers[event] = value
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]any)
	}
	n.attrs[key] = value
}

// RemoveProperty implements backend.Backend.
func (d *Document) RemoveProperty(node backend.Node, key string) {
	n := node.(*Node)
	if event, ok := eventName(key); ok {
		delete(n.handlers, event)
		return
	}
	delete(n.attrs, key)
}

// SetTextContent implements backend.Backend.
func (d *Document) SetTextContent(node backend.Node, text string) {
	node.(*Node).text = text
}

// Destroy implements backend.Backend, dropping the subtree from the
// id table.
func (d *Document) Destroy(node backend.Node) {
	n := node.(*Node)
	d.mu.Lock()
	unregister(d.byID, n)
	d.mu.Unlock()
}

func unregister(byID map[uint64]*Node, n *Node) {
	delete(byID, n.id)
	for _, c := range n.children {
		unregister(byID, c)
	}
}

// DispatchEvent implements backend.EventTarget. It invokes the
// handler registered on the node for the event, if any, and reports
// whether a handler ran. Handlers may be func() or func(any).
func (d *Document) DispatchEvent(node backend.Node, event string, payload any) bool {
	n := node.(*Node)
	h := n.handlers[event]
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

// eventName reports whether a property key names an event handler and
// returns the bare event name ("onclick" -> "click").
func eventName(key string) (string, bool) {
	if len(key) > 2 && strings.HasPrefix(key, "on") {
		return key[2:], true
	}
	return "", false
}

var (
	_ backend.Backend     = (*Document)(nil)
	_ backend.EventTarget = (*Document)(nil)
)
