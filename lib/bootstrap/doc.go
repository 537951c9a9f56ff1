// Package bootstrap copies the state of a remote key-value node into a
// local one. It is used when a fresh node joins and needs to catch up with
// a peer that already holds data.
//
// The driver pulls the remote entries in fixed-size chunks, pausing between
// fetches so the remote node is not saturated. Every fetch response carries
// a diff of the modifications that arrived on the remote since the previous
// chunk, so writes happening during the copy are folded into the local state
// instead of being lost.
//
// A run moves through the states INIT -> FETCHING -> CAUGHT_UP. Cancelling
// the context or a failing remote call ends the run in CANCELLED.
//
// Usage Example:
//
//	remote, _ := client.NewRPCNode(config, tcp.NewTCPClientTransport(), serializer.NewBinarySerializer())
//	driver := bootstrap.NewDriver(localNode, remote, bootstrap.DefaultConfig())
//	if err := driver.Run(ctx); err != nil {
//	  // the local node is in a partial state and should not serve reads
//	}
package bootstrap
