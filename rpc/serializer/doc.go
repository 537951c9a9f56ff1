// Package serializer converts Messages to and from their wire
// representation. Three interchangeable implementations are provided:
//
//   - JSON: human-readable, interoperable, the default
//   - GOB: Go's native binary encoding
//   - Binary: a custom flag-based binary format with length-prefixed
//     fields, the most compact and fastest of the three
//
// Server and client must be configured with the same serializer. The
// implementation is selected with the --serializer flag.
package serializer
