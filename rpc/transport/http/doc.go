// Package http provides the HTTP implementation of the RPC transport.
// Serialized messages are POSTed to the server root; the server also
// exposes Prometheus-formatted metrics on GET /metrics. Unknown routes
// answer 404.
package http
