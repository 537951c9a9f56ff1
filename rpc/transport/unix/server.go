package unix

import (
	"fmt"
	"net"
	"os"

	"github.com/ValentinKolb/bKV/rpc/common"
	"github.com/ValentinKolb/bKV/rpc/transport"
	"github.com/ValentinKolb/bKV/rpc/transport/base"
)

const (
	defaultBufferSize        = 512 * 1024 // 512 KB
	defaultMaxWorkersPerConn = 16
)

// serverConnector implements the IServerConnector interface for unix sockets
type serverConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IServerConnector)
// --------------------------------------------------------------------------

func (c *serverConnector) GetName() string {
	return "unix"
}

func (c *serverConnector) Listen(config common.ServerConfig) (net.Listener, error) {
	// Remove a stale socket file from a previous run
	if err := os.Remove(config.Endpoint); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale socket file: %v", err)
	}

	listener, err := net.Listen("unix", config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket: %v", err)
	}

	return listener, nil
}

func (c *serverConnector) UpgradeConnection(conn net.Conn) error {
	return nil // Nothing to tune for unix sockets
}

// --------------------------------------------------------------------------
// Server Transport Factory Method
// --------------------------------------------------------------------------

// NewUnixServerTransport creates a new unix socket server transport
func NewUnixServerTransport() transport.IRPCServerTransport {
	return base.NewBaseServerTransport(&serverConnector{}, defaultBufferSize, defaultMaxWorkersPerConn)
}
