package vdom

// ContextToken identifies a context value slot. Tokens are compared by
// pointer identity, so two tokens with the same name are distinct slots.
type ContextToken struct {
	name string
}

// NewContextToken creates a context token. The name is for diagnostics
// only.
func NewContextToken(name string) *ContextToken {
	return &ContextToken{name: name}
}

// Name returns the diagnostic name of the token.
func (t *ContextToken) Name() string { return t.name }

// Provide wraps children in a context node supplying value for token.
// The value is visible to descendants in the logical tree, including
// portal children, and is restored when reconciliation of the children
// completes.
func Provide(token *ContextToken, value any, children ...any) *VNode {
	node := &VNode{
		Kind:     KindContext,
		Provides: []Provided{{Token: token, Value: value}},
	}
	for _, child := range children {
		node.Children = appendChild(node.Children, child)
	}
	return node
}

// ProvideAll wraps children in a context node supplying several
// token/value pairs at once.
func ProvideAll(pairs []Provided, children ...any) *VNode {
	node := &VNode{
		Kind:     KindContext,
		Provides: pairs,
	}
	for _, child := range children {
		node.Children = appendChild(node.Children, child)
	}
	return node
}
