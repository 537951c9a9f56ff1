// Package common contains the types shared between the RPC server and
// client: the wire Message with its factory functions, the message type
// enum, and the server/client configuration structs.
//
// A Message is a single request or response. The same struct is used for
// every operation; which fields carry data depends on the MessageType.
// Serialization of Messages is handled by the serializer package, framing
// and delivery by the transport package.
package common
