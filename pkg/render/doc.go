// Package render turns vdom trees into HTML on the server. The
// renderer resolves components, reads signal values without
// subscribing, and marks interactive elements as islands so the client
// can hydrate exactly the parts that carry behavior. Alongside the
// markup it collects the scripts, stylesheets, and static assets the
// page references.
package render
