// Package live serves interactive sessions over WebSocket. Each
// session mounts the application into a server-side document whose
// mutations are recorded as patch ops; after every update cycle the
// accumulated ops go to the client as one patch frame, and client
// events come back referencing server node ids. The HTTP surface is a
// chi router with the SSR page, the session endpoint, and Prometheus
// metrics.
package live
