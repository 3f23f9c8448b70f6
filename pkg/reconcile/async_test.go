package reconcile

import (
	"testing"
	"time"

	"github.com/filament-ui/filament/pkg/vdom"
)

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not reached before deadline")
}

func TestAwaitPendingRendersNothing(t *testing.T) {
	rec, container := setup()
	ch := make(chan any)
	root := Render(rec, container, vdom.Div(vdom.Await(ch)))
	defer root.Unmount()

	if got := container.TextContent(); got != "" {
		t.Errorf("pending future rendered %q", got)
	}
}

func TestAwaitAppliesFirstValue(t *testing.T) {
	rec, container := setup()
	ch := make(chan any, 2)
	root := Render(rec, container, vdom.Div(vdom.Await(ch)))
	defer root.Unmount()

	ch <- vdom.Span("loaded")
	waitFor(t, func() bool {
		var got string
		root.Dispatch(func() { got = container.TextContent() })
		return got == "loaded"
	})

	// A one-shot future ignores later values.
	ch <- vdom.Span("ignored")
	time.Sleep(20 * time.Millisecond)
	var got string
	root.Dispatch(func() { got = container.TextContent() })
	if got != "loaded" {
		t.Errorf("TextContent = %q, want loaded", got)
	}
}

func TestStreamAppliesSequence(t *testing.T) {
	rec, container := setup()
	ch := make(chan any)
	root := Render(rec, container, vdom.Div(vdom.Stream(ch)))
	defer root.Unmount()

	for _, msg := range []string{"one", "two", "three"} {
		ch <- msg
	}
	close(ch)

	waitFor(t, func() bool {
		var got string
		root.Dispatch(func() { got = container.TextContent() })
		return got == "three"
	})
}

func TestStreamStructuralValues(t *testing.T) {
	rec, container := setup()
	ch := make(chan any)
	root := Render(rec, container, vdom.Div(vdom.Stream(ch)))
	defer root.Unmount()

	ch <- vdom.Ul(vdom.Li("a"))
	ch <- vdom.Ul(vdom.Li("a"), vdom.Li("b"))

	waitFor(t, func() bool {
		var got string
		root.Dispatch(func() { got = container.TextContent() })
		return got == "ab"
	})
}

func TestFutureValueAfterUnmountIsDropped(t *testing.T) {
	rec, container := setup()
	ch := make(chan any, 1)
	root := Render(rec, container, vdom.Div(vdom.Await(ch)))

	root.Unmount()
	rec.Flush()
	ch <- vdom.Span("late")

	time.Sleep(20 * time.Millisecond)
	if ops := rec.Flush(); len(ops) != 0 {
		t.Errorf("late future value mutated an unmounted tree: %+v", ops)
	}
}

func TestDispatchAfterUnmountReturnsFalse(t *testing.T) {
	rec, container := setup()
	root := Render(rec, container, vdom.Div())
	root.Unmount()

	if root.Dispatch(func() {}) {
		t.Errorf("Dispatch on an unmounted root returned true")
	}
}
