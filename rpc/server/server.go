package server

import (
	"context"
	"fmt"

	"github.com/ValentinKolb/bKV/lib/logger"
	"github.com/ValentinKolb/bKV/lib/store"
	"github.com/ValentinKolb/bKV/rpc/common"
	"github.com/ValentinKolb/bKV/rpc/serializer"
	"github.com/ValentinKolb/bKV/rpc/transport"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new RPC server for the given node
// It takes a config, node, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		store.NewNode(nil),
//		http.NewHttpServerTransport(),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	node store.INode,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) *RPCServer {
	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	return &RPCServer{
		config:     config,
		node:       node,
		transport:  transport,
		serializer: serializer,
		adapter:    NewNodeServerAdapter(),
	}
}

type RPCServer struct {
	config     common.ServerConfig
	node       store.INode
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	adapter    IRPCServerAdapter
}

// registerTransportHandler wires the deserialize -> adapter -> serialize
// pipeline into the transport layer
func (s *RPCServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(req []byte) []byte {
		var msg common.Message
		var respMsg common.Message

		// Decode the request
		err := s.serializer.Deserialize(req, &msg)

		if err != nil {
			// A malformed request must never touch node state; answer
			// with an error message instead
			respMsg = common.Message{
				MsgType: common.MsgTError,
				Err:     fmt.Sprintf("failed to deserialize request: %s", err),
			}
		} else {
			// Let the adapter handle the request
			respMsg = *s.adapter.Handle(&msg, s.node)
		}

		// Return result
		val, err := s.serializer.Serialize(respMsg)
		if err != nil {
			Logger.Errorf("Failed to serialize response: %v", err)
			val, _ = s.serializer.Serialize(*common.NewErrorResponse(
				fmt.Sprintf("failed to serialize response: %s", err),
			))
		}
		return val
	})
}

// Serve starts the RPC server. It blocks until Shutdown is called.
func (s *RPCServer) Serve() error {
	s.registerTransportHandler()
	return s.transport.Listen(s.config)
}

// Shutdown stops the transport: no new connections are accepted and
// in-flight requests are drained before it returns.
func (s *RPCServer) Shutdown(ctx context.Context) error {
	Logger.Infof("Shutting down RPC server")
	return s.transport.Shutdown(ctx)
}
