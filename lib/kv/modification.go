package kv

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Modification Type Definition
// --------------------------------------------------------------------------

// Op defines the kind of a Modification. The set of operations is closed:
// every site that applies a Modification switches exhaustively over Op.
type Op uint8

const (
	OpUnknown Op = iota
	OpUpdate     // Insert or overwrite a key
	OpDelete     // Remove a key (no-op if absent)
)

// String returns the string representation of an Op.
func (o Op) String() string {
	switch o {
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for Op.
// This allows Op to be serialized as a string in JSON.
func (o Op) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for Op.
// This allows Op to be deserialized from a string in JSON.
func (o *Op) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "update":
		*o = OpUpdate
	case "delete":
		*o = OpDelete
	default:
		return fmt.Errorf("unknown modification op: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Modification
// --------------------------------------------------------------------------

// Modification is a single mutation of the key-value store. Applying a
// Modification is idempotent: applying it twice yields the same store state
// as applying it once.
type Modification struct {
	Op    Op     `json:"op"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"` // Only used for OpUpdate
}

// Update creates a Modification that inserts or overwrites a key.
func Update(key, value string) Modification {
	return Modification{Op: OpUpdate, Key: key, Value: value}
}

// Delete creates a Modification that removes a key.
func Delete(key string) Modification {
	return Modification{Op: OpDelete, Key: key}
}

// String returns a human-readable representation of the Modification.
func (m Modification) String() string {
	switch m.Op {
	case OpUpdate:
		return fmt.Sprintf("update(%s=%s)", m.Key, m.Value)
	case OpDelete:
		return fmt.Sprintf("delete(%s)", m.Key)
	default:
		return fmt.Sprintf("unknown(%s)", m.Key)
	}
}

// --------------------------------------------------------------------------
// Entry
// --------------------------------------------------------------------------

// Entry is a single key-value pair of the store.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
