package dom

import (
	"sync"

	"github.com/filament-ui/filament/pkg/backend"
)

// OpKind names a recorded mutation. The set mirrors the backend
// capability surface one to one so a remote tree can replay a frame
// without interpretation.
type OpKind string

const (
	OpCreateElement OpKind = "createElement"
	OpCreateText    OpKind = "createText"
	OpAppendChild   OpKind = "appendChild"
	OpInsertBefore  OpKind = "insertBefore"
	OpRemoveChild   OpKind = "removeChild"
	OpSetProperty   OpKind = "setProperty"
	OpRemoveProp    OpKind = "removeProperty"
	OpSetText       OpKind = "setText"
	OpDestroy       OpKind = "destroy"
)

// Op is one recorded mutation. Node ids refer to ids assigned by the
// underlying Document.
type Op struct {
	Kind   OpKind `json:"op"`
	Node   uint64 `json:"node"`
	Parent uint64 `json:"parent,omitempty"`
	Ref    uint64 `json:"ref,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  any    `json:"value,omitempty"`
	Text   string `json:"text,omitempty"`
	// Listener marks a handler registration; the handler itself stays
	// server-side and the client forwards events by node id and name.
	Listener bool `json:"listener,omitempty"`
}

// Recorder wraps a Document and logs every mutation as an Op. Live
// sessions flush the log after each update cycle into a patch frame.
type Recorder struct {
	*Document

	mu  sync.Mutex
	ops []Op
}

// NewRecorder creates a recorder over a fresh document.
func NewRecorder() *Recorder {
	return &Recorder{Document: NewDocument()}
}

// Flush returns the ops recorded since the last flush and clears the
// log.
func (r *Recorder) Flush() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := r.ops
	r.ops = nil
	return ops
}

// Pending returns the number of unflushed ops.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops)
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func id(n backend.Node) uint64 {
	if n == nil {
		return 0
	}
	return n.(*Node).id
}

func (r *Recorder) CreateElement(tag string) backend.Node {
	n := r.Document.CreateElement(tag)
	r.record(Op{Kind: OpCreateElement, Node: id(n), Tag: tag})
	return n
}

func (r *Recorder) CreateText(text string) backend.Node {
	n := r.Document.CreateText(text)
	r.record(Op{Kind: OpCreateText, Node: id(n), Text: text})
	return n
}

func (r *Recorder) AppendChild(parent, child backend.Node) {
	r.Document.AppendChild(parent, child)
	r.record(Op{Kind: OpAppendChild, Node: id(child), Parent: id(parent)})
}

func (r *Recorder) InsertBefore(parent, child, ref backend.Node) {
	r.Document.InsertBefore(parent, child, ref)
	r.record(Op{Kind: OpInsertBefore, Node: id(child), Parent: id(parent), Ref: id(ref)})
}

func (r *Recorder) RemoveChild(parent, child backend.Node) {
	r.Document.RemoveChild(parent, child)
	r.record(Op{Kind: OpRemoveChild, Node: id(child), Parent: id(parent)})
}

func (r *Recorder) SetProperty(node backend.Node, key string, value any) {
	r.Document.SetProperty(node, key, value)
	op := Op{Kind: OpSetProperty, Node: id(node), Key: key}
	if _, isEvent := eventName(key); isEvent {
		op.Listener = true
	} else {
		op.Value = value
	}
	r.record(op)
}

func (r *Recorder) RemoveProperty(node backend.Node, key string) {
	r.Document.RemoveProperty(node, key)
	r.record(Op{Kind: OpRemoveProp, Node: id(node), Key: key})
}

func (r *Recorder) SetTextContent(node backend.Node, text string) {
	r.Document.SetTextContent(node, text)
	r.record(Op{Kind: OpSetText, Node: id(node), Text: text})
}

func (r *Recorder) Destroy(node backend.Node) {
	nid := id(node)
	r.Document.Destroy(node)
	r.record(Op{Kind: OpDestroy, Node: nid})
}

var (
	_ backend.Backend     = (*Recorder)(nil)
	_ backend.EventTarget = (*Recorder)(nil)
)
