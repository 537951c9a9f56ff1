package client

import (
	"io"

	"github.com/ValentinKolb/bKV/lib/kv"
	"github.com/ValentinKolb/bKV/lib/store"
	"github.com/ValentinKolb/bKV/rpc/common"
	"github.com/ValentinKolb/bKV/rpc/serializer"
	"github.com/ValentinKolb/bKV/rpc/transport"
)

// rpcNode implements the store.INode interface by forwarding every
// operation to a remote node over the configured transport
type rpcNode struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// NewRPCNode creates a new RPC backed node handle. It connects the
// transport to the configured endpoints and returns a store.INode that
// can be used interchangeably with a local node.
func NewRPCNode(config common.ClientConfig, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (store.INode, error) {
	// Connect the transport layer
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	Logger.Infof("connected to remote node(s): %v", config.Endpoints)

	return &rpcNode{
		config:     config,
		transport:  transport,
		serializer: serializer,
	}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store.INode)
// --------------------------------------------------------------------------

func (n *rpcNode) Append(mods []kv.Modification) (uint32, error) {
	resp, err := invokeRPCRequest(common.NewInsertRequest(mods), n.transport, n.serializer)
	if err != nil {
		return 0, err
	}
	return resp.Head, nil
}

func (n *rpcNode) Info() (store.Info, error) {
	resp, err := invokeRPCRequest(common.NewInfoRequest(), n.transport, n.serializer)
	if err != nil {
		return store.Info{}, err
	}
	return store.Info{Head: resp.Head, Size: resp.Size}, nil
}

func (n *rpcNode) Fetch(begin, end uint64, head uint32) (store.FetchResult, error) {
	resp, err := invokeRPCRequest(common.NewFetchRequest(begin, end, head), n.transport, n.serializer)
	if err != nil {
		return store.FetchResult{}, err
	}
	return store.FetchResult{
		Head:    resp.Head,
		Entries: resp.Entries,
		Diff:    resp.Diff,
	}, nil
}

// Dump is not implemented in the rpc client adapter
func (n *rpcNode) Dump(_ io.Writer) error {
	return store.NewError(store.RetCUnsupportedOperation, "dump is not supported on a remote node")
}
