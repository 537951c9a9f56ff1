// Package cmd implements the command-line interface for the bKV key-value
// node. It provides a hierarchical command structure with operations for
// running a node and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value operations (set, del, info, fetch)
//   - serve: Commands for starting and configuring a bKV node
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See bkv -help for a list of all commands.
package cmd
