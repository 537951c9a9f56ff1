// Package base implements the shared socket transport used by the tcp and
// unix packages. Frames are length-prefixed and tagged with a request ID,
// so a single connection can carry concurrent requests; responses are
// matched back to their callers through a concurrent map of in-flight
// request channels. The concrete packages contribute only a connector
// (how to listen/dial and tune a connection).
package base
