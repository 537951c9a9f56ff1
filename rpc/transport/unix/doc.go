// Package unix provides the unix domain socket implementation of the RPC
// transport, built on the framed-socket base package. The endpoint is the
// socket path (e.g. /tmp/bkv.sock).
package unix
