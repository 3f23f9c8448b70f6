package vdom

import (
	"strings"
	"testing"

	"github.com/filament-ui/filament/pkg/reactive"
)

func TestHBasicElement(t *testing.T) {
	node := H("div", ID("app"), Class("container"))

	if node.Kind != KindElement {
		t.Errorf("Kind = %v, want Element", node.Kind)
	}
	if node.Tag != "div" {
		t.Errorf("Tag = %q, want div", node.Tag)
	}
	if node.Props["id"] != "app" {
		t.Errorf("id = %v, want app", node.Props["id"])
	}
	if node.Props["class"] != "container" {
		t.Errorf("class = %v, want container", node.Props["class"])
	}
}

func TestHNormalizesPrimitiveChildren(t *testing.T) {
	node := H("p", "hello ", 42, 3.5)

	if len(node.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(node.Children))
	}
	for i, want := range []string{"hello ", "42", "3.5"} {
		child := node.Children[i]
		if child.Kind != KindText || child.Text != want {
			t.Errorf("child %d = %v %q, want text %q", i, child.Kind, child.Text, want)
		}
	}
}

func TestHFlattensNestedSlices(t *testing.T) {
	items := []*VNode{Li("a"), Li("b")}
	node := Ul(items, Li("c"))

	if len(node.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(node.Children))
	}
}

func TestHDropsNilAndBool(t *testing.T) {
	node := Div(nil, If(false, Span()), true, false, "x")

	if len(node.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(node.Children))
	}
	if node.Children[0].Text != "x" {
		t.Errorf("surviving child = %q, want x", node.Children[0].Text)
	}
}

func TestHWrapsSignalChild(t *testing.T) {
	s := reactive.NewSignal("hi")
	node := Div(s)

	if len(node.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(node.Children))
	}
	child := node.Children[0]
	if child.Kind != KindSignal {
		t.Errorf("Kind = %v, want Signal", child.Kind)
	}
	if child.Source == nil || child.Source.ID() != s.ID() {
		t.Errorf("signal identity not preserved")
	}
}

func TestHRejectsUnknownChildShape(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic for unknown child shape")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "cannot use") {
			t.Errorf("panic = %v, want descriptive construction error", r)
		}
	}()

	type weird struct{}
	H("div", weird{})
}

func TestHKeyAttr(t *testing.T) {
	node := Li(Key("a"), "item")

	if node.Key != "a" {
		t.Errorf("Key = %q, want a", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Errorf("key leaked into props")
	}
}

func TestHEventHandler(t *testing.T) {
	clicked := false
	node := Button(On("click", func() { clicked = true }), "go")

	h, ok := node.Props["onclick"].(func())
	if !ok {
		t.Fatalf("onclick not stored as func")
	}
	h()
	if !clicked {
		t.Errorf("handler did not run")
	}
	if !node.IsInteractive() {
		t.Errorf("IsInteractive = false, want true")
	}
}

func TestNormalizeSingle(t *testing.T) {
	n := Normalize("text")
	if n == nil || n.Kind != KindText || n.Text != "text" {
		t.Errorf("Normalize(string) = %+v", n)
	}
}

func TestNormalizeNil(t *testing.T) {
	if n := Normalize(nil); n != nil {
		t.Errorf("Normalize(nil) = %+v, want nil", n)
	}
}

func TestNormalizeMultipleWrapsFragment(t *testing.T) {
	n := Normalize([]*VNode{Li("a"), Li("b")})
	if n == nil || n.Kind != KindFragment || len(n.Children) != 2 {
		t.Errorf("Normalize(slice) = %+v, want fragment of 2", n)
	}
}

func TestFragmentAndPortalKinds(t *testing.T) {
	f := Fragment(Span("a"), Span("b"))
	if f.Kind != KindFragment || len(f.Children) != 2 {
		t.Errorf("Fragment = %+v", f)
	}

	target := struct{}{}
	p := Portal(&target, Span("floating"))
	if p.Kind != KindPortal || p.Target != &target || len(p.Children) != 1 {
		t.Errorf("Portal = %+v", p)
	}
}

func TestProvideCarriesTokenValue(t *testing.T) {
	theme := NewContextToken("theme")
	n := Provide(theme, "dark", Div())

	if n.Kind != KindContext {
		t.Errorf("Kind = %v, want Context", n.Kind)
	}
	if len(n.Provides) != 1 || n.Provides[0].Token != theme || n.Provides[0].Value != "dark" {
		t.Errorf("Provides = %+v", n.Provides)
	}
}

func TestAwaitAndStreamKinds(t *testing.T) {
	ch := make(chan any)
	a := Await(ch)
	if a.Kind != KindAsync || a.Future == nil || a.Future.Stream {
		t.Errorf("Await = %+v", a)
	}
	s := Stream(ch)
	if s.Kind != KindAsync || s.Future == nil || !s.Future.Stream {
		t.Errorf("Stream = %+v", s)
	}
}
