// Package term renders trees to a terminal. It implements the backend
// capability surface over an internal node tree, composes the tree
// into styled lines through a pluggable Layout, and paints frames with
// termenv so colors degrade cleanly on dumb terminals and pipes.
package term
