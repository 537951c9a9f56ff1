package serve

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdUtil "github.com/ValentinKolb/bKV/cmd/util"
	"github.com/ValentinKolb/bKV/lib/bootstrap"
	"github.com/ValentinKolb/bKV/lib/logger"
	"github.com/ValentinKolb/bKV/lib/store"
	"github.com/ValentinKolb/bKV/rpc/client"
	"github.com/ValentinKolb/bKV/rpc/common"
	"github.com/ValentinKolb/bKV/rpc/server"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start a bKV node",
		Long:    `Start a bKV node with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is BKV_<flag> (e.g. BKV_ENDPOINT=0.0.0.0:9000)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:8080, /tmp/bkv.sock, ...)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Request timeout in seconds"))

	key = "max-chunk-size"
	ServeCmd.PersistentFlags().Int(key, store.DefaultMaxChunkSize, cmdUtil.WrapString("Maximum number of entries returned per fetch request"))

	key = "log-capacity"
	ServeCmd.PersistentFlags().Int(key, store.DefaultLogCapacity, cmdUtil.WrapString("Number of modification batches retained for computing diffs"))

	key = "bootstrap-peer"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Address of a running node to copy the initial state from. If empty the node starts with an empty store"))

	key = "bootstrap-fetch-interval"
	ServeCmd.PersistentFlags().Duration(key, time.Second, cmdUtil.WrapString("Pause between two bootstrap fetch rounds"))

	key = "bootstrap-retries"
	ServeCmd.PersistentFlags().Int(key, 3, cmdUtil.WrapString("Retry attempts per bootstrap remote call before the node gives up"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MaxChunkSize = viper.GetInt("max-chunk-size")
	serveCmdConfig.LogCapacity = viper.GetInt("log-capacity")
	serveCmdConfig.BootstrapPeer = viper.GetString("bootstrap-peer")
	serveCmdConfig.FetchInterval = viper.GetDuration("bootstrap-fetch-interval")
	serveCmdConfig.BootstrapRetries = viper.GetInt("bootstrap-retries")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	// configure the loggers before anything else logs
	return logger.InitLoggers(serveCmdConfig.LogLevel)
}

// run starts the bKV node and blocks until the process is signalled
func run(_ *cobra.Command, _ []string) error {
	// parse the serializer
	s, err := cmdUtil.GetSerializer()
	if err != nil {
		return err
	}

	// parse the transport
	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	// create the local node
	node := store.NewNode(&store.Options{
		MaxChunkSize: serveCmdConfig.MaxChunkSize,
		LogCapacity:  serveCmdConfig.LogCapacity,
	})

	serv := server.NewRPCServer(
		*serveCmdConfig,
		node,
		t,
		s,
	)

	// the context ends on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// pull the initial state from the configured peer while the node serves
	if serveCmdConfig.BootstrapPeer != "" {
		go runBootstrap(ctx, node)
	}

	// serve in the background so the signal can interrupt us
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- serv.Serve()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	// drain in-flight requests, then write the final state to stdout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := serv.Shutdown(shutdownCtx); err != nil {
		server.Logger.Errorf("shutdown error: %v", err)
	}

	return node.Dump(os.Stdout)
}

// runBootstrap pulls the initial state from the configured peer. Bootstrap
// failures are never fatal: an unreachable peer is logged and the node
// keeps serving standalone.
func runBootstrap(ctx context.Context, node store.INode) {
	remote, err := bootstrapPeer()
	if err != nil {
		bootstrap.Logger.Errorf("bootstrap abandoned, serving standalone: %v", err)
		return
	}

	driver := bootstrap.NewDriver(node, remote, bootstrap.Config{
		FetchInterval: serveCmdConfig.FetchInterval,
		MaxChunkSize:  serveCmdConfig.MaxChunkSize,
		Retries:       serveCmdConfig.BootstrapRetries,
	})
	if err := driver.Run(ctx); err != nil {
		bootstrap.Logger.Errorf("bootstrap abandoned: %v", err)
	}
}

// bootstrapPeer creates an RPC client handle for the configured peer
func bootstrapPeer() (store.INode, error) {
	s, err := cmdUtil.GetSerializer()
	if err != nil {
		return nil, err
	}
	t, err := cmdUtil.GetClientTransport()
	if err != nil {
		return nil, err
	}
	return client.NewRPCNode(common.ClientConfig{
		Endpoints:              []string{serveCmdConfig.BootstrapPeer},
		TimeoutSecond:          int(serveCmdConfig.TimeoutSecond),
		RetryCount:             serveCmdConfig.BootstrapRetries,
		ConnectionsPerEndpoint: 1,
	}, t, s)
}

// initConfig reads in serveCmdConfig file and ENV variables if set.
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("bkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
