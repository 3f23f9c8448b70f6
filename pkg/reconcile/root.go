package reconcile

import (
	"sync"
	"sync/atomic"

	"github.com/filament-ui/filament/pkg/backend"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vdom"
)

// Root is one mounted tree on one backend container. It owns the
// top-level reactive scope and a single update goroutine: reactive
// writes flush synchronously on whichever goroutine performs them,
// while external inputs (future values, remote events) serialize
// through Dispatch.
type Root struct {
	be        backend.Backend
	container backend.Node
	owner     *reactive.Owner
	engine    *engine
	rendered  *RenderedNode

	tasks  chan rootTask
	quit   chan struct{}
	closed atomic.Bool
	wg     sync.WaitGroup
}

type rootTask struct {
	fn   func()
	done chan struct{}
}

// Render mounts content into container on be and returns the live
// root. content may be anything vdom accepts as a child: a *VNode, a
// slice, a component, a primitive, a reactive source.
func Render(be backend.Backend, container backend.Node, content any) *Root {
	root := &Root{
		be:        be,
		container: container,
		owner:     reactive.NewOwner(nil),
		tasks:     make(chan rootTask),
		quit:      make(chan struct{}),
	}
	root.engine = &engine{be: be, root: root}

	if next := vdom.Normalize(content); next != nil {
		reactive.WithOwner(root.owner, func() {
			root.rendered = root.engine.mount(next, container, nil, root.owner)
		})
	}

	root.wg.Add(1)
	go root.loop()
	return root
}

func (r *Root) loop() {
	defer r.wg.Done()
	for {
		select {
		case t := <-r.tasks:
			r.runTask(t)
		case <-r.quit:
			return
		}
	}
}

func (r *Root) runTask(t rootTask) {
	defer close(t.done)
	reactive.WithOwner(r.owner, t.fn)
}

// Dispatch runs fn on the root's update goroutine and waits for it to
// complete. It is the single entry point for external mutations:
// future payloads, remote events, anything not already running inside
// a reactive flush. Returns false if the root has been unmounted, in
// which case fn never runs.
func (r *Root) Dispatch(fn func()) bool {
	if r.closed.Load() {
		return false
	}
	t := rootTask{fn: fn, done: make(chan struct{})}
	select {
	case r.tasks <- t:
	case <-r.quit:
		return false
	}
	<-t.done
	return true
}

// Patch reconciles the root against new content, preserving identity
// where the shapes agree.
func (r *Root) Patch(content any) {
	next := vdom.Normalize(content)
	switch {
	case next == nil && r.rendered == nil:
	case next == nil:
		r.engine.unmount(r.rendered)
		r.rendered = nil
	case r.rendered == nil:
		reactive.WithOwner(r.owner, func() {
			r.rendered = r.engine.mount(next, r.container, nil, r.owner)
		})
	default:
		reactive.WithOwner(r.owner, func() {
			r.rendered = r.engine.patch(r.rendered, next)
		})
	}
}

// Rendered returns the root shadow node, or nil when nothing is
// mounted.
func (r *Root) Rendered() *RenderedNode { return r.rendered }

// Unmount stops the update goroutine, tears the tree down, and
// disposes every owned effect and cleanup. Idempotent.
func (r *Root) Unmount() {
	if r.closed.Swap(true) {
		return
	}
	close(r.quit)
	r.wg.Wait()

	if r.rendered != nil {
		r.engine.unmount(r.rendered)
		r.rendered = nil
	}
	r.owner.Dispose()
}

// UseContext resolves the value provided for token at the current
// reactive scope, typically from inside a component's Render. Returns
// nil when no enclosing provider supplies the token.
func UseContext(token *vdom.ContextToken) any {
	owner := reactive.CurrentOwner()
	if owner == nil {
		return nil
	}
	return owner.GetValue(token)
}
