package main

import (
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vdom"
)

// demoApp is the built-in counter application served by `filament
// serve` and rendered by `filament render` when no other app is wired
// in. Each call creates fresh session-local state.
func demoApp() any {
	count := reactive.NewSignal(0)
	doubled := reactive.NewMemo(func() int { return count.Get() * 2 })

	return vdom.Main(
		vdom.H1("Filament demo"),
		vdom.P("count: ", count, " (doubled: ", doubled, ")"),
		vdom.Button(
			vdom.On("click", func() { count.Update(func(n int) int { return n + 1 }) }),
			"increment",
		),
		vdom.Button(
			vdom.On("click", func() { count.Set(0) }),
			"reset",
		),
	)
}
