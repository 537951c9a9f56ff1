// Package client implements the RPC client for the key-value node.
// It provides an implementation of the store.INode interface that
// communicates with a remote node via RPC.
//
// The package focuses on:
//   - Transparent RPC access to a remote node
//   - Integration with the transport and serialization layers
//   - Error handling and conversion between RPC and domain errors
//
// Key Components:
//
//   - NewRPCNode: Factory function that creates a client implementing the store.INode
//     interface. This client forwards all operations to a remote node via the configured
//     transport layer. Because the returned handle satisfies the same interface as a
//     local node, it can be handed directly to the bootstrap driver as the remote peer.
//
// Usage Example:
//
//	// Configure the client
//	config := common.ClientConfig{
//	  Endpoints:              []string{"localhost:5000"},
//	  TimeoutSecond:          5,
//	  RetryCount:             3,
//	  ConnectionsPerEndpoint: 1,
//	}
//
//	// Create a serializer
//	serializer := serializer.NewBinarySerializer()
//
//	// Create the node client
//	node, _ := client.NewRPCNode(config, tcp.NewTCPClientTransport(), serializer)
//
//	// Use the node
//	head, _ := node.Append([]kv.Modification{kv.Update("mykey", "myvalue")})
//	info, _ := node.Info()
//
// Performance Considerations:
//
//   - For applications that frequently send large payloads, increasing ConnectionsPerEndpoint
//     can improve throughput by allowing parallel requests.
//
//   - For small messages, a single connection per endpoint is often more efficient due to
//     reduced connection overhead.
//
//   - The choice of serializer significantly affects performance. The binary serializer
//     provides the best performance and smallest payload size.
//
// Thread Safety:
//
//	The client is thread-safe and can be used concurrently from multiple
//	goroutines without additional synchronization.
package client
