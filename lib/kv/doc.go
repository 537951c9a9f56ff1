// Package kv defines the data model shared by the store, the RPC layer and
// the bootstrap driver: the Modification sum type (update or delete of a
// single key) and the Entry key-value pair.
//
// Modifications are the only way state enters a node. A batch of
// modifications is applied atomically by the node and recorded in its
// modification log, from where it can later be replayed to a bootstrapping
// peer as part of a catch-up diff.
//
// The Op enum is closed. Code that applies modifications must switch
// exhaustively over the known operations; unknown operations are rejected
// at deserialization time and never reach a store.
package kv
