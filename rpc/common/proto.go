package common

import (
	"encoding/json"
	"fmt"

	"github.com/ValentinKolb/bKV/lib/kv"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// Request fields
	Mods  []kv.Modification `json:"mods,omitempty"`  // Used for: Insert requests
	Begin uint64            `json:"begin,omitempty"` // Used for: Fetch requests
	End   uint64            `json:"end,omitempty"`   // Used for: Fetch requests

	// Shared fields
	Head uint32 `json:"head,omitempty"` // Used for: Fetch requests, Info/Fetch responses

	// Response only fields
	Size    uint64            `json:"size,omitempty"`    // Used for: Info responses
	Entries []kv.Modification `json:"entries,omitempty"` // Used for: Fetch responses (snapshot page)
	Diff    []kv.Modification `json:"diff,omitempty"`    // Used for: Fetch responses (catch-up diff)
	Err     string            `json:"err,omitempty"`     // Empty if no error, otherwise contains the error message
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewInsertRequest creates a new Insert request
func NewInsertRequest(mods []kv.Modification) *Message {
	return &Message{
		MsgType: MsgTInsert,
		Mods:    mods,
	}
}

// NewInsertResponse creates a new Insert response
func NewInsertResponse(head uint32, err error) *Message {
	msg := &Message{
		MsgType: MsgTInsert,
		Head:    head,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewInfoRequest creates a new Info request
func NewInfoRequest() *Message {
	return &Message{
		MsgType: MsgTInfo,
	}
}

// NewInfoResponse creates a new Info response
func NewInfoResponse(head uint32, size uint64, err error) *Message {
	msg := &Message{
		MsgType: MsgTInfo,
		Head:    head,
		Size:    size,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewFetchRequest creates a new Fetch request
func NewFetchRequest(begin, end uint64, head uint32) *Message {
	return &Message{
		MsgType: MsgTFetch,
		Begin:   begin,
		End:     end,
		Head:    head,
	}
}

// NewFetchResponse creates a new Fetch response
func NewFetchResponse(head uint32, entries, diff []kv.Modification, err error) *Message {
	msg := &Message{
		MsgType: MsgTFetch,
		Head:    head,
		Entries: entries,
		Diff:    diff,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTInsert:
		return "insert"
	case MsgTInfo:
		return "info"
	case MsgTFetch:
		return "fetch"
	case MsgTError:
		return "error"
	case MsgTSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "insert":
		*t = MsgTInsert
	case "info":
		*t = MsgTInfo
	case "fetch":
		*t = MsgTFetch
	case "error":
		*t = MsgTError
	case "success":
		*t = MsgTSuccess
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// Node operations

	MsgTInsert // Apply a batch of modifications
	MsgTInfo   // Query head and size of the node
	MsgTFetch  // Fetch a snapshot page plus catch-up diff
)
