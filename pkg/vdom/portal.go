package vdom

// Portal renders children into target (an output node handle owned by
// the active backend) instead of the logical parent's output node.
// The portal stays part of the logical tree: context resolves through
// its logical ancestors and it unmounts with them.
func Portal(target any, children ...any) *VNode {
	node := &VNode{
		Kind:   KindPortal,
		Target: target,
	}
	for _, child := range children {
		node.Children = appendChild(node.Children, child)
	}
	return node
}
