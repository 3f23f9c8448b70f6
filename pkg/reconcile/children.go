package reconcile

import (
	"github.com/filament-ui/filament/pkg/backend"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vdom"
)

// patchChildren reconciles an ordered child list inside parent. endRef
// bounds the region: new children insert before it (nil means the end
// of parent). Keys switch the diff to keyed matching; without keys
// children pair up positionally.
func (e *engine) patchChildren(parent, endRef backend.Node, old []*RenderedNode, next []*vdom.VNode, owner *reactive.Owner) []*RenderedNode {
	if hasKeys(next) {
		return e.patchKeyed(parent, endRef, old, next, owner)
	}
	return e.patchPositional(parent, endRef, old, next, owner)
}

func hasKeys(nodes []*vdom.VNode) bool {
	for _, n := range nodes {
		if n.Key != "" {
			return true
		}
	}
	return false
}

// patchPositional pairs children by index: shared positions patch,
// extra old positions unmount, extra new positions mount at the end of
// the region.
func (e *engine) patchPositional(parent, endRef backend.Node, old []*RenderedNode, next []*vdom.VNode, owner *reactive.Owner) []*RenderedNode {
	result := make([]*RenderedNode, 0, len(next))

	shared := len(old)
	if len(next) < shared {
		shared = len(next)
	}
	for i := 0; i < shared; i++ {
		result = append(result, e.patch(old[i], next[i]))
	}
	for i := shared; i < len(old); i++ {
		e.unmount(old[i])
	}
	for i := shared; i < len(next); i++ {
		result = append(result, e.mount(next[i], parent, endRef, owner))
	}
	return result
}

// patchKeyed matches children by key, patches the matches in place,
// unmounts the unmatched, and then applies the minimal set of moves: a
// longest increasing subsequence of surviving old positions stays put
// and everything else is inserted or moved before its next sibling.
//
// If the same key appears on several old children, the last occurrence
// owns the key and earlier ones unmount. Unkeyed children in a keyed
// list never match and are remounted.
func (e *engine) patchKeyed(parent, endRef backend.Node, old []*RenderedNode, next []*vdom.VNode, owner *reactive.Owner) []*RenderedNode {
	oldByKey := make(map[string]int, len(old))
	for i, o := range old {
		if k := o.vnode.Key; k != "" {
			oldByKey[k] = i
		}
	}

	result := make([]*RenderedNode, len(next))
	sources := make([]int, len(next))
	used := make([]bool, len(old))

	for i, nv := range next {
		sources[i] = -1
		if nv.Key == "" {
			continue
		}
		j, ok := oldByKey[nv.Key]
		if !ok || used[j] || !sameIdentity(old[j], nv) {
			continue
		}
		used[j] = true
		sources[i] = j
		result[i] = e.patch(old[j], nv)
	}

	for j, o := range old {
		if !used[j] {
			e.unmount(o)
		}
	}

	stable := longestIncreasing(sources)
	stableIdx := len(stable) - 1

	ref := endRef
	for i := len(next) - 1; i >= 0; i-- {
		switch {
		case sources[i] == -1:
			result[i] = e.mount(next[i], parent, ref, owner)
		case stableIdx >= 0 && stable[stableIdx] == i:
			stableIdx--
		default:
			e.move(result[i], parent, ref)
		}
		if h := result[i].firstHandle(); h != nil {
			ref = h
		}
	}

	return result
}

// move reinserts a mounted position before ref without remounting it.
func (e *engine) move(r *RenderedNode, parent, ref backend.Node) {
	var handles []backend.Node
	r.appendHandles(&handles)
	for _, h := range handles {
		e.be.InsertBefore(parent, h, ref)
	}
}

// longestIncreasing returns the indices of a longest strictly
// increasing subsequence of values, ignoring -1 entries. Positions in
// the result keep their relative order, so everything outside it can
// be moved while the result stays put.
func longestIncreasing(values []int) []int {
	tails := make([]int, 0, len(values))
	prev := make([]int, len(values))

	for i, v := range values {
		if v == -1 {
			continue
		}
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if values[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	if len(tails) == 0 {
		return nil
	}
	out := make([]int, len(tails))
	k := tails[len(tails)-1]
	for i := len(tails) - 1; i >= 0; i-- {
		out[i] = k
		k = prev[k]
	}
	return out
}
