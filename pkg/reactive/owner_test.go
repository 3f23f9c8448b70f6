package reactive

import "testing"

func TestOwnerDisposesEffects(t *testing.T) {
	owner := NewOwner(nil)
	s := NewSignal(0)
	runs := 0

	WithOwner(owner, func() {
		NewEffect(func() Cleanup {
			_ = s.Get()
			runs++
			return nil
		})
	})

	owner.Dispose()
	s.Set(1)

	if runs != 1 {
		t.Errorf("effect ran after owner disposal, runs = %d", runs)
	}
}

func TestOwnerDisposesChildren(t *testing.T) {
	parent := NewOwner(nil)
	child := NewOwner(parent)

	var order []string
	parent.OnCleanup(func() { order = append(order, "parent") })
	child.OnCleanup(func() { order = append(order, "child") })

	parent.Dispose()

	if len(order) != 2 || order[0] != "child" || order[1] != "parent" {
		t.Errorf("cleanup order = %v, want [child parent]", order)
	}
	if !child.IsDisposed() {
		t.Errorf("child not disposed with parent")
	}
}

func TestOwnerCleanupAfterDisposeRunsImmediately(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })
	if !ran {
		t.Errorf("cleanup on disposed owner did not run immediately")
	}
}

func TestOwnerPanickingCleanupDoesNotAbortTeardown(t *testing.T) {
	SetPanicHandler(func(string, any) {})
	defer SetPanicHandler(nil)

	owner := NewOwner(nil)
	ran := false
	owner.OnCleanup(func() { ran = true })
	owner.OnCleanup(func() { panic("boom") }) // runs first (reverse order)

	owner.Dispose()
	if !ran {
		t.Errorf("teardown stopped at panicking cleanup")
	}
}

func TestOwnerContextValues(t *testing.T) {
	root := NewOwner(nil)
	mid := NewOwner(root)
	leaf := NewOwner(mid)

	type themeKey struct{}
	root.SetValue(themeKey{}, "dark")

	if got := leaf.GetValue(themeKey{}); got != "dark" {
		t.Errorf("leaf lookup = %v, want dark", got)
	}

	// Nearest provider wins.
	mid.SetValue(themeKey{}, "light")
	if got := leaf.GetValue(themeKey{}); got != "light" {
		t.Errorf("leaf lookup = %v, want light", got)
	}

	if got := root.GetValue(themeKey{}); got != "dark" {
		t.Errorf("root lookup = %v, want dark", got)
	}

	type missing struct{}
	if got := leaf.GetValue(missing{}); got != nil {
		t.Errorf("missing key = %v, want nil", got)
	}
}
