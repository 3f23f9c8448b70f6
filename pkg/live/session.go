package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/filament-ui/filament/pkg/dom"
	"github.com/filament-ui/filament/pkg/reconcile"
)

// Session is one connected client: a server-side document, the mounted
// root driving it, and the WebSocket carrying patches out and events
// in.
type Session struct {
	id     string
	conn   *websocket.Conn
	doc    *dom.Recorder
	root   *reconcile.Root
	logger *slog.Logger

	metrics *Metrics
	tracer  trace.Tracer

	readTimeout  time.Duration
	writeTimeout time.Duration

	writeMu sync.Mutex
	closed  atomic.Bool
}

func newSession(id string, conn *websocket.Conn, server *Server) *Session {
	return &Session{
		id:           id,
		conn:         conn,
		doc:          dom.NewRecorder(),
		logger:       server.logger.With("session_id", id),
		metrics:      server.metrics,
		tracer:       server.tracer,
		readTimeout:  server.config.ReadTimeout,
		writeTimeout: server.config.WriteTimeout,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// run mounts the application, ships the initial patch, and blocks in
// the read loop until the connection drops.
func (s *Session) run(app func() any) {
	defer s.close()

	s.root = reconcile.Render(s.doc, s.doc.Root(), app())
	if err := s.flushPatches(); err != nil {
		s.logger.Error("initial patch failed", "error", err)
		return
	}

	s.readLoop()
}

func (s *Session) close() {
	if s.closed.Swap(true) {
		return
	}
	if s.root != nil {
		s.root.Unmount()
	}
	s.conn.Close()
	s.metrics.ActiveSessions.Dec()
	s.logger.Info("session closed")
}

func (s *Session) readLoop() {
	for {
		if s.readTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		}
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			s.sendError("malformed frame")
			continue
		}

		switch frame.Type {
		case FrameEvent:
			s.handleEvent(frame)
		case FramePing:
			s.writeFrame(&Frame{Type: FramePong})
		case FramePong:
		default:
			s.logger.Warn("unknown frame type", "type", frame.Type)
		}
	}
}

// handleEvent delivers a client event to its server-side handler and
// flushes whatever document mutations the handler caused.
func (s *Session) handleEvent(frame *Frame) {
	start := time.Now()
	_, span := s.tracer.Start(context.Background(), "live.event", trace.WithAttributes(
		attribute.String("event", frame.Event),
		attribute.String("session_id", s.id),
	))
	defer span.End()

	var payload any
	if len(frame.Payload) > 0 {
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			s.metrics.EventsTotal.WithLabelValues(frame.Event, "malformed").Inc()
			s.sendError("malformed event payload")
			return
		}
	}

	delivered := false
	ok := s.root.Dispatch(func() {
		node := s.doc.ByID(frame.Node)
		if node == nil {
			return
		}
		delivered = s.doc.DispatchEvent(node, frame.Event, payload)
	})

	status := "ok"
	switch {
	case !ok:
		status = "closed"
	case !delivered:
		status = "unhandled"
	}
	s.metrics.EventsTotal.WithLabelValues(frame.Event, status).Inc()
	s.metrics.EventDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.String("status", status))

	if err := s.flushPatches(); err != nil {
		s.logger.Error("patch write failed", "error", err)
	}
}

// flushPatches drains the recorder and sends one patch frame if there
// is anything to send.
func (s *Session) flushPatches() error {
	ops := s.doc.Flush()
	if len(ops) == 0 {
		return nil
	}
	s.metrics.PatchesTotal.Inc()
	s.metrics.PatchOpsTotal.Add(float64(len(ops)))
	return s.writeFrame(&Frame{Type: FramePatch, Ops: ops})
}

func (s *Session) sendError(message string) {
	if err := s.writeFrame(&Frame{Type: FrameError, Message: message}); err != nil {
		s.logger.Error("error frame write failed", "error", err)
	}
}

func (s *Session) writeFrame(f *Frame) error {
	data, err := EncodeFrame(f)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.writeTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
