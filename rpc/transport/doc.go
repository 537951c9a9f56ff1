// Package transport defines the request/response channel between RPC
// clients and servers. Payloads are opaque byte slices; serialization is
// the serializer package's concern, routing by message type the server's.
//
// Three implementations are provided: http (net/http based, also exposes
// the metrics endpoint), and tcp/unix which share a framed-socket
// implementation in the base package. Server transports support graceful
// shutdown: they stop accepting new connections and drain in-flight
// requests before returning.
package transport
