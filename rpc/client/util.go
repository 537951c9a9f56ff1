package client

import (
	"fmt"

	"github.com/ValentinKolb/bKV/lib/logger"
	"github.com/ValentinKolb/bKV/lib/store"
	"github.com/ValentinKolb/bKV/rpc/common"
	"github.com/ValentinKolb/bKV/rpc/serializer"
	"github.com/ValentinKolb/bKV/rpc/transport"
)

var (
	Logger = logger.GetLogger("rpc")
)

// invokeRPCRequest is a helper function used by the RPC client to send requests
// It takes a request message, a transport layer and a serializer as parameters
// It returns a response message and an error if any occurs
// This method also checks if the response is an error response and if the type of the response is the expected type
func invokeRPCRequest(req *common.Message, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (*common.Message, error) {
	// Serialize the request
	reqBytes, err := serializer.Serialize(*req)
	if err != nil {
		return nil, err
	}

	// Send the request
	respBytes, err := transport.Send(reqBytes)
	if err != nil {
		return nil, store.NewError(store.RetCUnavailable, err.Error())
	}

	// Deserialize the response
	resp := &common.Message{}
	err = serializer.Deserialize(respBytes, resp)
	if err != nil {
		return nil, fmt.Errorf("RPC NodeClient - Error: %s", err)
	}

	// Check if the response is an error response
	if resp.MsgType == common.MsgTError || resp.Err != "" {
		return nil, fmt.Errorf("RPC NodeClient - Error: %s", resp.Err)
	}

	// Check if the type of the response is the expected type
	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("RPC NodeClient - Unexpected message type: %s, expected %s", resp.MsgType, req.MsgType)
	}

	// Return the response
	return resp, nil
}
