package vdom

// Future is an asynchronous content source for one tree position.
// A pending future renders nothing; each value received on C is
// normalized and reconciled into the position, in order. For a
// one-shot future (Stream false) only the first value is applied.
//
// The producer closes C when done. Values arriving after the position
// unmounts are discarded silently.
type Future struct {
	C      <-chan any
	Stream bool
}

// Await renders nothing until ch delivers a value, then reconciles the
// position with that value. Later values are ignored.
func Await(ch <-chan any) *VNode {
	return &VNode{
		Kind:   KindAsync,
		Future: &Future{C: ch},
	}
}

// Stream reconciles the position with every value received on ch, in
// sequence, never overlapping: the next value is pulled only after the
// previous reconciliation has been applied.
func Stream(ch <-chan any) *VNode {
	return &VNode{
		Kind:   KindAsync,
		Future: &Future{C: ch, Stream: true},
	}
}
