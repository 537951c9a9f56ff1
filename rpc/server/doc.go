// Package server exposes a store.INode over an RPC transport. The server
// owns the deserialize -> adapter -> serialize pipeline; the adapter maps
// message types onto node operations and turns node errors into error
// responses. Malformed requests are answered with an error message and
// never reach the node.
package server
