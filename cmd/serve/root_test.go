package serve

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/ValentinKolb/bKV/lib/store"
)

// An unreachable bootstrap peer must not prevent the node from serving:
// the bootstrap attempt is logged and abandoned, the node stays empty.
func TestRunBootstrapUnreachablePeer(t *testing.T) {
	viper.Set("serializer", "json")
	viper.Set("transport", "tcp")
	defer viper.Reset()

	// port 1 on loopback is never listening, so the connect fails fast
	serveCmdConfig.BootstrapPeer = "127.0.0.1:1"
	serveCmdConfig.TimeoutSecond = 1
	serveCmdConfig.BootstrapRetries = 1
	serveCmdConfig.MaxChunkSize = store.DefaultMaxChunkSize
	serveCmdConfig.FetchInterval = time.Millisecond

	node := store.NewNode(nil)

	done := make(chan struct{})
	go func() {
		runBootstrap(context.Background(), node)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("bootstrap against an unreachable peer must return, not hang or exit")
	}

	info, err := node.Info()
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if info.Head != 0 || info.Size != 0 {
		t.Errorf("node must stay empty after an abandoned bootstrap, got head=%d size=%d", info.Head, info.Size)
	}
}
