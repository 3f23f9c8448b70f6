package live

import (
	"encoding/json"

	"github.com/filament-ui/filament/pkg/dom"
)

// FrameType discriminates wire frames.
type FrameType string

const (
	// FramePatch carries document mutations, server to client.
	FramePatch FrameType = "patch"

	// FrameEvent carries a user event, client to server.
	FrameEvent FrameType = "event"

	// FramePing and FramePong keep the connection alive.
	FramePing FrameType = "ping"
	FramePong FrameType = "pong"

	// FrameError reports a session-level problem to the client.
	FrameError FrameType = "error"
)

// Frame is one WebSocket message in either direction.
type Frame struct {
	Type FrameType `json:"type"`

	// Ops is the patch payload.
	Ops []dom.Op `json:"ops,omitempty"`

	// Node and Event identify an event delivery target.
	Node  uint64 `json:"node,omitempty"`
	Event string `json:"event,omitempty"`

	// Payload is the event payload, decoded lazily.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Message is the error text.
	Message string `json:"message,omitempty"`
}

// EncodeFrame serializes a frame.
func EncodeFrame(f *Frame) ([]byte, error) {
	return json.Marshal(f)
}

// DecodeFrame parses a frame.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
