package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/filament-ui/filament/pkg/vdom"
)

// Page describes a complete HTML document around a rendered body.
type Page struct {
	// Lang is the document language. Defaults to "en".
	Lang string

	// Title is the document title, escaped on output.
	Title string

	// Meta maps meta names to content values.
	Meta map[string]string

	// Head holds extra head nodes: links, preloads, inline styles.
	Head []*vdom.VNode

	// Body is the page content; anything vdom accepts as a child.
	Body any
}

// RenderPage writes a full document: doctype, head, body, and the
// island bootstrap payload the client runtime reads before hydrating.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<body>"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, vdom.Normalize(page.Body)); err != nil {
		return err
	}
	if err := r.renderIslandBootstrap(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

func (r *Renderer) renderHead(w io.Writer, page Page) error {
	if _, err := io.WriteString(w, "<head>\n<meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for name, content := range page.Meta {
		if _, err := fmt.Fprintf(w, "<meta name=\"%s\" content=\"%s\">\n", escapeAttr(name), escapeAttr(content)); err != nil {
			return err
		}
	}
	for _, node := range page.Head {
		if err := r.renderNode(w, node, 0); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderIslandBootstrap emits the collected islands as a JSON payload
// plus the runtime script tag. Nothing is emitted for a static page.
func (r *Renderer) renderIslandBootstrap(w io.Writer) error {
	if len(r.islands) == 0 {
		return nil
	}
	payload, err := json.Marshal(r.islands)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n<script type=\"application/json\" data-filament-islands>%s</script>", payload); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n<script src=\"%s/filament-islands.js\" defer></script>", r.config.AssetPath)
	return err
}
