package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vdom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables indented output. Development only; it inflates
	// the payload.
	Pretty bool

	// Indent is the per-level indent string in pretty mode. Defaults
	// to two spaces.
	Indent string

	// AssetPath is the base path for collected assets and the island
	// runtime script.
	AssetPath string
}

// Island describes one interactive element in the rendered markup: the
// client loads the runtime, finds the element by id, and wires the
// listed events back to the session.
type Island struct {
	ID     string   `json:"id"`
	Tag    string   `json:"tag"`
	Events []string `json:"events"`
}

// Result is the output of a full render: the markup plus everything
// the page needs around it.
type Result struct {
	HTML    string
	Islands []Island
	Scripts []string
	CSS     []string
	Assets  []string
}

// Renderer renders vdom trees to HTML. A Renderer is single-use per
// tree unless Reset is called; island ids are sequential within one
// render so server and client agree on them.
type Renderer struct {
	config        Config
	islandCounter uint32
	islands       []Island
	scripts       mapset.Set[string]
	css           mapset.Set[string]
	assets        mapset.Set[string]
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config:  config,
		scripts: mapset.NewSet[string](),
		css:     mapset.NewSet[string](),
		assets:  mapset.NewSet[string](),
	}
}

// Reset clears per-render state so the Renderer can be reused.
func (r *Renderer) Reset() {
	r.islandCounter = 0
	r.islands = nil
	r.scripts.Clear()
	r.css.Clear()
	r.assets.Clear()
}

// RenderToString renders content and returns the markup together with
// the islands and collected page resources. content may be anything
// vdom accepts as a child.
func (r *Renderer) RenderToString(content any) (*Result, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, vdom.Normalize(content)); err != nil {
		return nil, err
	}

	result := &Result{
		HTML:    buf.String(),
		Islands: r.islands,
		Scripts: sorted(r.scripts),
		CSS:     sorted(r.css),
		Assets:  sorted(r.assets),
	}
	if len(r.islands) > 0 {
		result.Scripts = append([]string{r.config.AssetPath + "/filament-islands.js"}, result.Scripts...)
	}
	return result, nil
}

// RenderToString renders content with a default configuration.
func RenderToString(content any) (*Result, error) {
	return NewRenderer(Config{}).RenderToString(content)
}

// RenderToWriter streams a vnode tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// Islands returns the islands collected so far.
func (r *Renderer) Islands() []Island { return r.islands }

func sorted(s mapset.Set[string]) []string {
	out := s.ToSlice()
	sort.Strings(out)
	return out
}

func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	case vdom.KindSignal:
		return r.renderSignal(w, node, depth)
	case vdom.KindComponent:
		return r.renderComponent(w, node, depth)
	case vdom.KindFragment:
		return r.renderChildren(w, node.Children, depth)
	case vdom.KindContext:
		return r.renderContext(w, node, depth)
	case vdom.KindPortal:
		return r.renderPortal(w, node, depth)
	case vdom.KindAsync:
		return r.renderAsync(w, node, depth)
	default:
		return fmt.Errorf("filament: cannot render node of kind %v", node.Kind)
	}
}

func (r *Renderer) renderChildren(w io.Writer, children []*vdom.VNode, depth int) error {
	for _, c := range children {
		if err := r.renderNode(w, c, depth); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", node.Tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if node.IsInteractive() {
		island := r.nextIsland(node)
		props, err := json.Marshal(struct {
			Events []string `json:"events"`
		}{island.Events})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, ` data-island-id="%s" data-island-props="%s"`,
			island.ID, escapeAttr(string(props))); err != nil {
			return err
		}
	}
	r.collectAssets(node)

	if vdom.IsVoidElement(node.Tag) {
		_, err := io.WriteString(w, ">")
		if err == nil && r.config.Pretty {
			_, err = io.WriteString(w, "\n")
		}
		return err
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	pretty := r.config.Pretty && len(node.Children) > 0 && !isInline(node.Tag)
	if pretty {
		io.WriteString(w, "\n")
	}
	if err := r.renderChildren(w, node.Children, depth+1); err != nil {
		return err
	}
	if pretty {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", node.Tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderSignal renders the source's current value without subscribing.
func (r *Renderer) renderSignal(w io.Writer, node *vdom.VNode, depth int) error {
	value := node.Source.AnyPeek()
	if text, ok := primitiveText(value); ok {
		_, err := io.WriteString(w, escapeHTML(text))
		return err
	}
	return r.renderNode(w, vdom.Normalize(value), depth)
}

// renderComponent renders the component's output. The render runs
// inside a fresh owner scope so context lookups resolve; the scope is
// disposed as soon as the output is written, since server renders hold
// no live subscriptions.
func (r *Renderer) renderComponent(w io.Writer, node *vdom.VNode, depth int) error {
	owner := reactive.NewOwner(reactive.CurrentOwner())
	defer owner.Dispose()

	var out any
	reactive.WithOwner(owner, func() {
		reactive.Untracked(func() {
			out = node.Comp.Render()
		})
	})
	return r.renderNode(w, vdom.Normalize(out), depth)
}

func (r *Renderer) renderContext(w io.Writer, node *vdom.VNode, depth int) error {
	owner := reactive.NewOwner(reactive.CurrentOwner())
	defer owner.Dispose()

	for _, p := range node.Provides {
		owner.SetValue(p.Token, p.Value)
	}

	var err error
	reactive.WithOwner(owner, func() {
		err = r.renderChildren(w, node.Children, depth)
	})
	return err
}

// renderPortal emits the portal content in place inside a marked
// template element. The markup stays out of the visible flow and
// hydration relocates the content into the real target.
func (r *Renderer) renderPortal(w io.Writer, node *vdom.VNode, depth int) error {
	if _, err := io.WriteString(w, `<template data-portal="">`); err != nil {
		return err
	}
	if err := r.renderChildren(w, node.Children, depth); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</template>")
	return err
}

// renderAsync renders a future's value only if it is already
// available; a future still pending at render time contributes
// nothing and resolves after hydration.
func (r *Renderer) renderAsync(w io.Writer, node *vdom.VNode, depth int) error {
	select {
	case value, ok := <-node.Future.C:
		if !ok {
			return nil
		}
		return r.renderNode(w, vdom.Normalize(value), depth)
	default:
		return nil
	}
}

func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.HasPrefix(key, "on") {
			continue
		}
		value := node.Props[key]
		if src, ok := value.(reactive.Source); ok {
			value = src.AnyPeek()
		}

		switch v := value.(type) {
		case nil:
		case bool:
			if v {
				if _, err := fmt.Fprintf(w, " %s", key); err != nil {
					return err
				}
			}
		default:
			if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(attrText(v))); err != nil {
				return err
			}
		}
	}
	return nil
}

// nextIsland registers an interactive element and returns its record.
func (r *Renderer) nextIsland(node *vdom.VNode) Island {
	r.islandCounter++
	island := Island{
		ID:  fmt.Sprintf("i%d", r.islandCounter),
		Tag: node.Tag,
	}
	for key := range node.Props {
		if strings.HasPrefix(key, "on") {
			island.Events = append(island.Events, key[2:])
		}
	}
	sort.Strings(island.Events)
	r.islands = append(r.islands, island)
	return island
}

// collectAssets records page resources referenced by the element so
// the caller can preload or fingerprint them.
func (r *Renderer) collectAssets(node *vdom.VNode) {
	switch node.Tag {
	case "script":
		if src, ok := node.Props["src"].(string); ok && src != "" {
			r.scripts.Add(src)
		}
	case "link":
		if rel, _ := node.Props["rel"].(string); rel == "stylesheet" {
			if href, ok := node.Props["href"].(string); ok && href != "" {
				r.css.Add(href)
			}
		}
	case "img":
		if src, ok := node.Props["src"].(string); ok && src != "" {
			r.assets.Add(src)
		}
	}
}

func attrText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func primitiveText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}

// isInline reports whether an element renders inline, which suppresses
// pretty-mode newlines around its children.
func isInline(tag string) bool {
	switch tag {
	case "a", "b", "code", "em", "i", "li", "option", "p", "span", "strong", "td", "th", "label", "button", "h1", "h2", "h3", "h4", "h5", "h6", "title":
		return true
	default:
		return false
	}
}
