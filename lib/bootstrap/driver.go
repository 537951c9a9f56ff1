package bootstrap

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/sethvargo/go-retry"

	"github.com/ValentinKolb/bKV/lib/kv"
	"github.com/ValentinKolb/bKV/lib/logger"
	"github.com/ValentinKolb/bKV/lib/store"
)

var (
	Logger = logger.GetLogger("bootstrap")
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// State describes the current phase of a bootstrap run
type State uint8

const (
	// StateInit means the driver has not started yet
	StateInit State = iota
	// StateFetching means the driver is pulling chunks from the remote node
	StateFetching
	// StateCaughtUp means the local node holds the remote state
	StateCaughtUp
	// StateCancelled means the run was aborted before catching up
	StateCancelled
)

// String returns the state as a human-readable string
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateFetching:
		return "FETCHING"
	case StateCaughtUp:
		return "CAUGHT_UP"
	case StateCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Config holds the tuning knobs for a bootstrap run
type Config struct {
	// FetchInterval is the pause between two chunk fetches
	FetchInterval time.Duration
	// MaxChunkSize is the number of entries requested per fetch
	MaxChunkSize int
	// Retries is the number of attempts per remote call before the run fails
	Retries int
}

// DefaultConfig returns the default bootstrap configuration
func DefaultConfig() Config {
	return Config{
		FetchInterval: time.Second,
		MaxChunkSize:  store.DefaultMaxChunkSize,
		Retries:       3,
	}
}

// Driver copies the state of a remote node into a local node. It pulls the
// remote entries in fixed-size chunks and applies the diff returned with
// every chunk so that writes arriving on the remote during the copy are not
// lost.
type Driver struct {
	local  store.INode
	remote store.INode
	config Config
	state  atomic.Uint32 // holds a State; read concurrently via State()
}

// NewDriver creates a bootstrap driver. Both the local and the remote node
// are accessed through the store.INode interface, so the remote side is
// typically an RPC client handle.
func NewDriver(local, remote store.INode, config Config) *Driver {
	if config.MaxChunkSize <= 0 {
		config.MaxChunkSize = store.DefaultMaxChunkSize
	}
	if config.Retries <= 0 {
		config.Retries = 1
	}
	return &Driver{
		local:  local,
		remote: remote,
		config: config,
	}
}

// State returns the current phase of the run. It is safe to call from any
// goroutine while Run is in progress.
func (d *Driver) State() State {
	return State(d.state.Load())
}

func (d *Driver) setState(s State) {
	d.state.Store(uint32(s))
}

// --------------------------------------------------------------------------
// Bootstrap Loop
// --------------------------------------------------------------------------

var (
	chunksFetched   = metrics.NewCounter(`bkv_bootstrap_chunks_fetched_total`)
	entriesCopied   = metrics.NewCounter(`bkv_bootstrap_entries_copied_total`)
	diffModsApplied = metrics.NewCounter(`bkv_bootstrap_diff_mods_applied_total`)
)

// Run executes the bootstrap until the local node has caught up with the
// remote node or the context is cancelled. It blocks the calling goroutine.
func (d *Driver) Run(ctx context.Context) error {
	// The remote size is read once up front. Entries inserted on the remote
	// while the copy is running are picked up through the diff instead.
	info, err := d.remoteInfo(ctx)
	if err != nil {
		d.setState(StateCancelled)
		return fmt.Errorf("bootstrap: reading remote info failed: %w", err)
	}
	d.setState(StateFetching)

	Logger.Infof("starting bootstrap, remote holds %d entries at head %d", info.Size, info.Head)

	var (
		index = uint64(0)
		head  = info.Head
	)

	for index < info.Size {
		end := index + uint64(d.config.MaxChunkSize)
		if end > info.Size {
			end = info.Size
		}

		result, err := d.remoteFetch(ctx, index, end, head)
		if err != nil {
			d.setState(StateCancelled)
			return fmt.Errorf("bootstrap: fetching chunk at index %d failed: %w", index, err)
		}

		// The chunk entries and the diff are applied as one batch so the
		// local modification log records the round as a single head step
		mods := make([]kv.Modification, 0, len(result.Entries)+len(result.Diff))
		mods = append(mods, result.Entries...)
		mods = append(mods, result.Diff...)

		if _, err := d.local.Append(mods); err != nil {
			d.setState(StateCancelled)
			return fmt.Errorf("bootstrap: applying chunk at index %d failed: %w", index, err)
		}

		chunksFetched.Inc()
		entriesCopied.Add(len(result.Entries))
		diffModsApplied.Add(len(result.Diff))

		Logger.Debugf("fetched chunk at index %d (%d entries, %d diff modifications, remote head %d)",
			index, len(result.Entries), len(result.Diff), result.Head)

		head = result.Head
		index += uint64(d.config.MaxChunkSize)

		if index >= info.Size {
			break
		}

		select {
		case <-ctx.Done():
			d.setState(StateCancelled)
			return ctx.Err()
		case <-time.After(d.config.FetchInterval):
		}
	}

	d.setState(StateCaughtUp)
	Logger.Infof("bootstrap finished, local node caught up at head %d", head)
	return nil
}

// --------------------------------------------------------------------------
// Remote Calls
// --------------------------------------------------------------------------

// remoteInfo reads the remote node info with retries
func (d *Driver) remoteInfo(ctx context.Context) (store.Info, error) {
	var info store.Info
	err := retry.Do(ctx, d.backoff(), func(ctx context.Context) error {
		var err error
		info, err = d.remote.Info()
		if err != nil {
			Logger.Warningf("remote info call failed, retrying: %v", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	return info, err
}

// remoteFetch reads one chunk from the remote node with retries
func (d *Driver) remoteFetch(ctx context.Context, begin, end uint64, head uint32) (store.FetchResult, error) {
	var result store.FetchResult
	err := retry.Do(ctx, d.backoff(), func(ctx context.Context) error {
		var err error
		result, err = d.remote.Fetch(begin, end, head)
		if err != nil {
			Logger.Warningf("remote fetch call failed, retrying: %v", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	return result, err
}

// backoff builds the retry policy for a single remote call
func (d *Driver) backoff() retry.Backoff {
	b := retry.NewExponential(50 * time.Millisecond)
	return retry.WithMaxRetries(uint64(d.config.Retries), b)
}
