package reconcile

import (
	"testing"

	"github.com/filament-ui/filament/pkg/dom"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vdom"
)

func TestSignalLeafUpdatesInPlace(t *testing.T) {
	rec, container := setup()
	count := reactive.NewSignal(0)
	root := Render(rec, container, vdom.Div("count: ", count))
	defer root.Unmount()

	if got := container.TextContent(); got != "count: 0" {
		t.Fatalf("TextContent = %q", got)
	}
	rec.Flush()

	count.Set(1)

	if got := container.TextContent(); got != "count: 1" {
		t.Errorf("TextContent = %q, want count: 1", got)
	}
	ops := rec.Flush()
	if len(ops) != 1 || ops[0].Kind != dom.OpSetText {
		t.Errorf("ops = %+v, want exactly one setText", ops)
	}
}

func TestSignalLeafIgnoresEqualWrites(t *testing.T) {
	rec, container := setup()
	name := reactive.NewSignal("a")
	root := Render(rec, container, vdom.Span(name))
	defer root.Unmount()
	rec.Flush()

	name.Set("a")

	if ops := rec.Flush(); len(ops) != 0 {
		t.Errorf("equal write produced ops: %+v", ops)
	}
}

func TestSignalStructuralValue(t *testing.T) {
	rec, container := setup()
	view := reactive.NewSignal[any](vdom.Strong("bold"))
	root := Render(rec, container, vdom.Div(view))
	defer root.Unmount()

	if got := container.InnerHTML(); got != "<div><strong>bold</strong></div>" {
		t.Fatalf("InnerHTML = %q", got)
	}

	view.Set(vdom.Em("italic"))
	if got := container.InnerHTML(); got != "<div><em>italic</em></div>" {
		t.Errorf("InnerHTML = %q", got)
	}

	// Structural to primitive and back.
	view.Set("plain")
	if got := container.TextContent(); got != "plain" {
		t.Errorf("TextContent = %q, want plain", got)
	}
	view.Set(vdom.Strong("again"))
	if got := container.InnerHTML(); got != "<div><strong>again</strong></div>" {
		t.Errorf("InnerHTML = %q", got)
	}
}

func TestSignalNilValueRendersNothing(t *testing.T) {
	rec, container := setup()
	view := reactive.NewSignal[any](vdom.Span("x"))
	root := Render(rec, container, vdom.Div(view))
	defer root.Unmount()

	view.Set(nil)

	if got := container.TextContent(); got != "" {
		t.Errorf("TextContent = %q, want empty", got)
	}
}

func TestComponentRendersAndReacts(t *testing.T) {
	rec, container := setup()
	count := reactive.NewSignal(1)
	comp := vdom.Func(func() any {
		return vdom.P(vdom.Textf("value %d", count.Get()))
	})
	root := Render(rec, container, comp)
	defer root.Unmount()

	if got := container.TextContent(); got != "value 1" {
		t.Fatalf("TextContent = %q", got)
	}

	count.Set(2)

	if got := container.TextContent(); got != "value 2" {
		t.Errorf("TextContent = %q, want value 2", got)
	}
}

func TestComponentRerenderDisposesPreviousScope(t *testing.T) {
	rec, container := setup()
	count := reactive.NewSignal(0)
	disposed := 0
	comp := vdom.Func(func() any {
		reactive.OnUnmount(func() { disposed++ })
		return vdom.Span(count.Get())
	})
	root := Render(rec, container, comp)
	defer root.Unmount()

	count.Set(1)
	count.Set(2)

	// Each re-render releases the previous render's scope.
	if disposed != 2 {
		t.Errorf("disposed = %d, want 2", disposed)
	}
}

func TestNestedComponents(t *testing.T) {
	rec, container := setup()
	inner := vdom.Func(func() any { return vdom.Em("inner") })
	outer := vdom.Func(func() any { return vdom.Div("outer ", inner) })
	root := Render(rec, container, outer)
	defer root.Unmount()

	if got := container.TextContent(); got != "outer inner" {
		t.Errorf("TextContent = %q", got)
	}
}

func TestFragmentChildrenShareParent(t *testing.T) {
	rec, container := setup()
	root := Render(rec, container, vdom.Div(
		"before ",
		vdom.Fragment(vdom.Span("a"), vdom.Span("b")),
		" after",
	))
	defer root.Unmount()

	if got := container.TextContent(); got != "before ab after" {
		t.Errorf("TextContent = %q", got)
	}
	if got := container.InnerHTML(); got != "<div>before <span>a</span><span>b</span> after</div>" {
		t.Errorf("InnerHTML = %q", got)
	}
}

func TestContextValueVisibleToComponents(t *testing.T) {
	rec, container := setup()
	theme := vdom.NewContextToken("theme")
	var seen any
	comp := vdom.Func(func() any {
		seen = UseContext(theme)
		return vdom.Div("ok")
	})
	root := Render(rec, container, vdom.Provide(theme, "dark", comp))
	defer root.Unmount()

	if seen != "dark" {
		t.Errorf("UseContext = %v, want dark", seen)
	}
}

func TestContextNesting(t *testing.T) {
	rec, container := setup()
	theme := vdom.NewContextToken("theme")
	var outer, inner any
	innerComp := vdom.Func(func() any {
		inner = UseContext(theme)
		return vdom.Span("i")
	})
	outerComp := vdom.Func(func() any {
		outer = UseContext(theme)
		return vdom.Div(vdom.Provide(theme, "light", innerComp))
	})
	root := Render(rec, container, vdom.Provide(theme, "dark", outerComp))
	defer root.Unmount()

	if outer != "dark" {
		t.Errorf("outer = %v, want dark", outer)
	}
	if inner != "light" {
		t.Errorf("inner = %v, want light", inner)
	}
}

func TestPortalRendersIntoTarget(t *testing.T) {
	rec, container := setup()
	target := rec.CreateElement("div").(*dom.Node)
	rec.AppendChild(rec.Root(), target)

	root := Render(rec, container, vdom.Div(
		"home",
		vdom.Portal(target, vdom.Span("floating")),
	))
	defer root.Unmount()

	home := root.Rendered().Handle().(*dom.Node)
	if got := home.TextContent(); got != "home" {
		t.Errorf("home TextContent = %q, want home", got)
	}
	if got := target.TextContent(); got != "floating" {
		t.Errorf("target TextContent = %q, want floating", got)
	}
}

func TestPortalUnmountClearsTarget(t *testing.T) {
	rec, container := setup()
	target := rec.CreateElement("div").(*dom.Node)
	rec.AppendChild(rec.Root(), target)

	root := Render(rec, container, vdom.Portal(target, vdom.Span("floating")))
	root.Unmount()

	if got := target.TextContent(); got != "" {
		t.Errorf("target TextContent after unmount = %q, want empty", got)
	}
}

func TestPortalSeesContextFromHomePosition(t *testing.T) {
	rec, container := setup()
	target := rec.CreateElement("div").(*dom.Node)
	rec.AppendChild(rec.Root(), target)

	theme := vdom.NewContextToken("theme")
	var seen any
	comp := vdom.Func(func() any {
		seen = UseContext(theme)
		return vdom.Span("p")
	})
	root := Render(rec, container, vdom.Provide(theme, "dark",
		vdom.Portal(target, comp),
	))
	defer root.Unmount()

	// Context follows logical ancestry, not output placement.
	if seen != "dark" {
		t.Errorf("portal child UseContext = %v, want dark", seen)
	}
}
