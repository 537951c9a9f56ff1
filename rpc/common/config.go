package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for a bKV node process.
type ServerConfig struct {
	// Endpoint is the address the API listens on
	// (e.g. 0.0.0.0:8080 for http/tcp, /tmp/bkv.sock for unix)
	Endpoint string

	// Request timeout in seconds (read/write deadlines on socket transports)
	TimeoutSecond int64

	// Node tunables
	MaxChunkSize int // Page size cap per fetch
	LogCapacity  int // Retained modification batches

	// Bootstrap parameters (bootstrap is skipped if Peer is empty)
	BootstrapPeer    string        // Address of the node to bootstrap from
	FetchInterval    time.Duration // Pause between bootstrap fetch rounds
	BootstrapRetries int           // Retry attempts per remote call before giving up

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	// Node settings
	addSection("Node")
	addField("Max Chunk Size", strconv.Itoa(c.MaxChunkSize))
	addField("Log Capacity", strconv.Itoa(c.LogCapacity))

	// Bootstrap settings
	if c.BootstrapPeer != "" {
		addSection("Bootstrap")
		addField("Peer", c.BootstrapPeer)
		addField("Fetch Interval", c.FetchInterval.String())
		addField("Retries Per Call", strconv.Itoa(c.BootstrapRetries))
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	Endpoints              []string
	TimeoutSecond          int
	RetryCount             int
	ConnectionsPerEndpoint int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.ConnectionsPerEndpoint)))))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
