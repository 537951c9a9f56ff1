// Package store implements the in-memory key-value node: an ordered
// key-value map, a bounded log of recent modification batches, and the
// node wrapper that guards both behind a single exclusive lock.
//
// Key Components:
//
//   - INode Interface: The operations a node exposes — Append, Info, Fetch
//     and Dump. The rpc/client package provides a remote implementation of
//     the same interface, so the bootstrap driver works against local and
//     remote nodes alike.
//
//   - keyValueStore: The ground truth of live state. Backed by a B-tree
//     ordered by key so that snapshot pages are deterministic, key-ordered
//     slices of the live data.
//
//   - modificationLog: A bounded, head-indexed log of recent modification
//     batches. Each Append records one batch tagged with a head counter
//     that increases by exactly 1 per append. The log answers "what
//     changed since head h" queries for bootstrapping peers; once a head
//     has been evicted the answer degrades to the entire retained log,
//     which a consumer must treat as a full resync.
//
// Consistency Model:
//
//	The store's state is always exactly the result of replaying every
//	batch ever appended, in append order. Log eviction never un-applies
//	effects already committed to the store. Each INode operation is one
//	critical section under the node's lock; the lock is never held across
//	network I/O.
//
// For the process that pulls a remote node's state through Info and Fetch,
// see the bootstrap package.
package store
