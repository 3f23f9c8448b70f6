package render

import (
	"io"
	"net/http"

	"github.com/filament-ui/filament/pkg/vdom"
)

// StreamingRenderer renders a page in flushed sections for faster
// time-to-first-byte: the head goes out before the body is produced,
// and the body before the island bootstrap.
type StreamingRenderer struct {
	*Renderer
	w       io.Writer
	flusher http.Flusher
}

// NewStreamingRenderer creates a streaming renderer over w. When w
// implements http.Flusher each section is flushed as it completes;
// otherwise the renderer degrades to plain buffered output.
func NewStreamingRenderer(w io.Writer, config Config) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		w:        w,
		flusher:  flusher,
	}
}

// RenderPage renders the document, flushing after the head, the body,
// and the final bootstrap section.
func (s *StreamingRenderer) RenderPage(page Page) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(s.w, "<!DOCTYPE html>\n<html lang=\""+escapeAttr(lang)+"\">\n"); err != nil {
		return err
	}
	if err := s.renderHead(s.w, page); err != nil {
		return err
	}
	s.flush()

	if _, err := io.WriteString(s.w, "<body>"); err != nil {
		return err
	}
	if err := s.RenderToWriter(s.w, vdom.Normalize(page.Body)); err != nil {
		return err
	}
	s.flush()

	if err := s.renderIslandBootstrap(s.w); err != nil {
		return err
	}
	if _, err := io.WriteString(s.w, "</body>\n</html>\n"); err != nil {
		return err
	}
	s.flush()
	return nil
}

func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// FlushableWriter wraps an io.Writer and counts flushes. Test helper
// for streaming behavior without an http.ResponseWriter.
type FlushableWriter struct {
	io.Writer
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
}
