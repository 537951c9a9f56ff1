package store

import (
	"fmt"
	"io"

	"github.com/ValentinKolb/bKV/lib/kv"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Info is the metadata snapshot returned by INode.Info.
type Info struct {
	// Head identifies the most recently recorded modification batch
	// (0 if nothing has been appended yet).
	Head uint32 `json:"head"`
	// Size is the number of live keys in the store.
	Size uint64 `json:"size"`
}

// FetchResult is the result of a single INode.Fetch call: one key-ordered
// snapshot page plus the modifications recorded since the head the caller
// last observed.
type FetchResult struct {
	// Head identifies the most recent batch at the moment of the call.
	Head uint32 `json:"head"`
	// Entries is the requested snapshot page, re-expressed as update
	// modifications so the caller can apply them like any other batch.
	Entries []kv.Modification `json:"entries"`
	// Diff holds the modifications recorded since the head the caller
	// passed in. If that head has been evicted from the log (or was never
	// recorded), Diff holds the entire retained log.
	Diff []kv.Modification `json:"diff"`
}

// INode is the interface for interacting with a key-value node. A local
// node applies operations against in-process state; the rpc client package
// provides an implementation that forwards them to a remote node.
//
// All operations are atomic with respect to each other.
type INode interface {
	// Append applies every modification in mods to the store and records
	// mods as one batch in the modification log. The batch is applied
	// unconditionally and never partially; the returned head identifies it.
	// Empty batches are legal and still advance the head.
	Append(mods []kv.Modification) (head uint32, err error)
	// Info returns the current head and store size.
	Info() (info Info, err error)
	// Fetch returns up to end-begin entries (capped at the configured chunk
	// size) starting at the begin-th key in ascending key order, together
	// with the diff since the given head. A range with end < begin is
	// rejected with RetCInvalidArgument.
	Fetch(begin, end uint64, head uint32) (result FetchResult, err error)
	// Dump writes every key-value pair to w in ascending key order, one
	// "key - value" line per entry. Diagnostic only, not part of the
	// replication protocol.
	Dump(w io.Writer) error
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCUnsupportedOperation:
		errorCode = "UnsupportedOperation"
	case RetCInvalidArgument:
		errorCode = "InvalidArgument"
	case RetCUnavailable:
		errorCode = "Unavailable"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("NodeError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Command executed successfully.
	RetCInternalError                       // 1: Command failed due to an internal error.
	RetCUnsupportedOperation                // 2: Operation is not supported by this node implementation.
	RetCInvalidArgument                     // 3: Invalid argument (e.g. a fetch range with end < begin).
	RetCUnavailable                         // 4: A remote node could not be reached.
)
