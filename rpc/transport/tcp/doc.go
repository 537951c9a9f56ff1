// Package tcp provides the TCP implementation of the RPC transport,
// built on the framed-socket base package.
package tcp
