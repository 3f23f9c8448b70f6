package term

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/reconcile"
	"github.com/filament-ui/filament/pkg/vdom"
)

func newTestTerminal() *Terminal {
	return New(&bytes.Buffer{})
}

func TestFlowLayoutBlocksAndInline(t *testing.T) {
	term := newTestTerminal()
	root := reconcile.Render(term, term.Root(), vdom.Div(
		vdom.H1("Tasks"),
		vdom.P("a ", vdom.Strong("bold"), " tail"),
	))
	defer root.Unmount()

	frame := term.Frame()
	assert.Equal(t, "Tasks\na bold tail", frame)
}

func TestListMarkers(t *testing.T) {
	term := newTestTerminal()
	root := reconcile.Render(term, term.Root(), vdom.Ul(
		vdom.Li("first"),
		vdom.Li("second"),
	))
	defer root.Unmount()

	assert.Equal(t, "- first\n- second", term.Frame())
}

func TestSignalUpdatesFrame(t *testing.T) {
	term := newTestTerminal()
	count := reactive.NewSignal(0)
	root := reconcile.Render(term, term.Root(), vdom.Div("count: ", count))
	defer root.Unmount()

	require.Equal(t, "count: 0", term.Frame())
	term.Paint()
	assert.False(t, term.Dirty())

	count.Set(5)

	assert.True(t, term.Dirty(), "mutation should mark the frame dirty")
	assert.Equal(t, "count: 5", term.Frame())
}

func TestStylePropsDoNotLeakIntoAsciiOutput(t *testing.T) {
	term := newTestTerminal()
	root := reconcile.Render(term, term.Root(), vdom.Div(
		vdom.H("span", vdom.Prop("fg", "1"), vdom.Prop("bold", true), "styled"),
	))
	defer root.Unmount()

	// On the Ascii profile termenv strips all styling sequences.
	assert.Equal(t, "styled", term.Frame())
}

func TestKeyedListReorderOnTerminal(t *testing.T) {
	term := newTestTerminal()
	items := func(keys ...string) *vdom.VNode {
		nodes := make([]*vdom.VNode, len(keys))
		for i, k := range keys {
			nodes[i] = vdom.Li(vdom.Key(k), k)
		}
		return vdom.Ul(nodes)
	}
	root := reconcile.Render(term, term.Root(), items("a", "b", "c"))
	defer root.Unmount()

	root.Patch(items("c", "a", "b"))

	assert.Equal(t, "- c\n- a\n- b", term.Frame())
}

func TestDispatchEventToHandler(t *testing.T) {
	term := newTestTerminal()
	pressed := ""
	root := reconcile.Render(term, term.Root(), vdom.Div(
		vdom.On("key", func(p any) { pressed = p.(string) }),
		"listening",
	))
	defer root.Unmount()

	handle := root.Rendered().Handle()
	require.True(t, term.DispatchEvent(handle, "key", "enter"))
	assert.Equal(t, "enter", pressed)
}

func TestPaintWritesFrame(t *testing.T) {
	var buf bytes.Buffer
	term := New(&buf)
	root := reconcile.Render(term, term.Root(), vdom.P("hello"))
	defer root.Unmount()

	frame := term.Paint()
	assert.Equal(t, "hello", frame)
	assert.Contains(t, buf.String(), "hello")
}

func TestCustomLayout(t *testing.T) {
	term := New(&bytes.Buffer{}, WithLayout(&FlowLayout{ListMarker: "* "}))
	root := reconcile.Render(term, term.Root(), vdom.Ul(vdom.Li("x")))
	defer root.Unmount()

	assert.Equal(t, "* x", term.Frame())
}
