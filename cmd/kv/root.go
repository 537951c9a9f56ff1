package kv

import (
	"github.com/spf13/cobra"

	"github.com/ValentinKolb/bKV/cmd/util"
	"github.com/ValentinKolb/bKV/lib/store"
	"github.com/ValentinKolb/bKV/rpc/client"
)

var (
	rpcNode store.INode

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value operations on a remote node",
		PersistentPreRunE: setupKVClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the KV command
	util.SetupRPCClientFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(infoCmd)
	KeyValueCommands.AddCommand(fetchCmd)
}

// setupKVClient initializes the RPC node client
func setupKVClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetClientTransport()
	if err != nil {
		return err
	}

	// Create the node client
	rpcNode, err = client.NewRPCNode(
		config,
		t,
		s,
	)

	return err
}
