package reconcile

import (
	"testing"

	"github.com/filament-ui/filament/pkg/dom"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vdom"
)

func setup() (*dom.Recorder, *dom.Node) {
	rec := dom.NewRecorder()
	return rec, rec.Root()
}

func TestRenderBasicTree(t *testing.T) {
	rec, container := setup()
	root := Render(rec, container, vdom.Div(
		vdom.H1("Title"),
		vdom.P("Body"),
	))
	defer root.Unmount()

	want := "<div><h1>Title</h1><p>Body</p></div>"
	if got := container.InnerHTML(); got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}
}

func TestRenderPrimitiveContent(t *testing.T) {
	rec, container := setup()
	root := Render(rec, container, "hello")
	defer root.Unmount()

	if got := container.TextContent(); got != "hello" {
		t.Errorf("TextContent = %q, want hello", got)
	}
}

func TestPatchPreservesElementIdentity(t *testing.T) {
	rec, container := setup()
	root := Render(rec, container, vdom.Div(vdom.Class("a"), vdom.Span("x")))
	defer root.Unmount()

	divHandle := root.Rendered().Handle().(*dom.Node)
	spanHandle := root.Rendered().children[0].Handle().(*dom.Node)
	rec.Flush()

	root.Patch(vdom.Div(vdom.Class("b"), vdom.Span("x")))

	if root.Rendered().Handle().(*dom.Node) != divHandle {
		t.Errorf("div handle replaced on prop change")
	}
	if root.Rendered().children[0].Handle().(*dom.Node) != spanHandle {
		t.Errorf("span handle replaced on parent prop change")
	}
	if v, _ := divHandle.Attr("class"); v != "b" {
		t.Errorf("class = %v, want b", v)
	}

	ops := rec.Flush()
	if len(ops) != 1 || ops[0].Kind != dom.OpSetProperty {
		t.Errorf("ops = %+v, want single setProperty", ops)
	}
}

func TestPatchReplacesOnTagChange(t *testing.T) {
	rec, container := setup()
	root := Render(rec, container, vdom.Div("x"))
	defer root.Unmount()

	oldHandle := root.Rendered().Handle().(*dom.Node)
	root.Patch(vdom.Span("x"))

	if root.Rendered().Handle().(*dom.Node) == oldHandle {
		t.Errorf("handle survived a tag change")
	}
	if got := container.InnerHTML(); got != "<span>x</span>" {
		t.Errorf("InnerHTML = %q", got)
	}
}

func TestPatchRemovesDroppedProps(t *testing.T) {
	rec, container := setup()
	root := Render(rec, container, vdom.Div(vdom.Class("a"), vdom.Title("t")))
	defer root.Unmount()

	root.Patch(vdom.Div(vdom.Class("a")))

	handle := root.Rendered().Handle().(*dom.Node)
	if _, ok := handle.Attr("title"); ok {
		t.Errorf("removed prop still present")
	}
	if v, _ := handle.Attr("class"); v != "a" {
		t.Errorf("surviving prop lost: class = %v", v)
	}
}

func TestPatchTextInPlace(t *testing.T) {
	rec, container := setup()
	root := Render(rec, container, vdom.P("before"))
	defer root.Unmount()
	rec.Flush()

	root.Patch(vdom.P("after"))

	if got := container.TextContent(); got != "after" {
		t.Errorf("TextContent = %q, want after", got)
	}
	ops := rec.Flush()
	if len(ops) != 1 || ops[0].Kind != dom.OpSetText {
		t.Errorf("ops = %+v, want single setText", ops)
	}
}

func TestSignalPropBinding(t *testing.T) {
	rec, container := setup()
	cls := reactive.NewSignal("off")
	root := Render(rec, container, vdom.Div(vdom.Prop("class", cls)))
	defer root.Unmount()

	handle := root.Rendered().Handle().(*dom.Node)
	if v, _ := handle.Attr("class"); v != "off" {
		t.Fatalf("initial class = %v", v)
	}
	rec.Flush()

	cls.Set("on")

	if v, _ := handle.Attr("class"); v != "on" {
		t.Errorf("class = %v, want on", v)
	}
	ops := rec.Flush()
	if len(ops) != 1 || ops[0].Kind != dom.OpSetProperty {
		t.Errorf("ops = %+v, want single setProperty", ops)
	}
}

func TestSignalPropStopsAfterUnmount(t *testing.T) {
	rec, container := setup()
	cls := reactive.NewSignal("off")
	root := Render(rec, container, vdom.Div(vdom.Prop("class", cls)))

	root.Unmount()
	rec.Flush()
	cls.Set("on")

	if ops := rec.Flush(); len(ops) != 0 {
		t.Errorf("unmounted binding still produced ops: %+v", ops)
	}
}

func TestEventHandlerDelivery(t *testing.T) {
	rec, container := setup()
	count := reactive.NewSignal(0)
	root := Render(rec, container, vdom.Button(
		vdom.On("click", func() { count.Update(func(n int) int { return n + 1 }) }),
		count,
	))
	defer root.Unmount()

	btn := root.Rendered().Handle().(*dom.Node)
	rec.DispatchEvent(btn, "click", nil)
	rec.DispatchEvent(btn, "click", nil)

	if got := btn.TextContent(); got != "2" {
		t.Errorf("TextContent = %q, want 2", got)
	}
}

func TestUnmountClearsContainer(t *testing.T) {
	rec, container := setup()
	root := Render(rec, container, vdom.Div(vdom.Span("x"), "y"))

	root.Unmount()

	if got := container.InnerHTML(); got != "" {
		t.Errorf("InnerHTML after unmount = %q, want empty", got)
	}
	if len(container.Children()) != 0 {
		t.Errorf("container still has %d children", len(container.Children()))
	}
}

func TestUnmountRunsCleanups(t *testing.T) {
	rec, container := setup()
	cleaned := false
	comp := vdom.Func(func() any {
		reactive.OnUnmount(func() { cleaned = true })
		return vdom.Div("c")
	})
	root := Render(rec, container, comp)

	root.Unmount()

	if !cleaned {
		t.Errorf("OnUnmount cleanup did not run")
	}
}
