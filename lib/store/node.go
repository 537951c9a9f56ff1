package store

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ValentinKolb/bKV/lib/kv"
)

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Default tunables. These match the wire protocol expectations of older
// peers, so change them cluster-wide or not at all.
const (
	DefaultMaxChunkSize = 20   // Page size cap per fetch
	DefaultLogCapacity  = 1000 // Retained modification batches
)

// Options configures a node during initialization.
type Options struct {
	MaxChunkSize int // Page size cap per fetch (0 = default)
	LogCapacity  int // Number of retained modification batches (0 = default)
}

// DefaultOptions returns the default node options.
func DefaultOptions() *Options {
	return &Options{
		MaxChunkSize: DefaultMaxChunkSize,
		LogCapacity:  DefaultLogCapacity,
	}
}

// --------------------------------------------------------------------------
// Node
// --------------------------------------------------------------------------

// nodeImpl owns one keyValueStore and one modificationLog behind a single
// exclusive lock. Every INode operation is one critical section; the store
// and the log are never exposed by reference, so no caller can interleave
// with a partially applied batch.
type nodeImpl struct {
	mu    sync.Mutex
	store *keyValueStore
	log   *modificationLog
	opts  Options
}

// NewNode creates a new empty node with the specified options (optional).
func NewNode(opts *Options) INode {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = DefaultMaxChunkSize
	}
	if opts.LogCapacity <= 0 {
		opts.LogCapacity = DefaultLogCapacity
	}

	return &nodeImpl{
		store: newKeyValueStore(),
		log:   newModificationLog(opts.LogCapacity),
		opts:  *opts,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see interface.go)
// --------------------------------------------------------------------------

func (n *nodeImpl) Append(mods []kv.Modification) (uint32, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, m := range mods {
		n.store.apply(m)
	}
	return n.log.record(mods), nil
}

func (n *nodeImpl) Info() (Info, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	return Info{
		Head: n.log.head(),
		Size: uint64(n.store.size()),
	}, nil
}

func (n *nodeImpl) Fetch(begin, end uint64, head uint32) (FetchResult, error) {
	if end < begin {
		return FetchResult{}, NewError(
			RetCInvalidArgument,
			fmt.Sprintf("invalid fetch range: end (%d) < begin (%d)", end, begin),
		)
	}
	if begin > math.MaxInt32 {
		return FetchResult{}, NewError(
			RetCInvalidArgument,
			fmt.Sprintf("fetch offset out of range: %d", begin),
		)
	}

	pageSize := end - begin
	if pageSize > uint64(n.opts.MaxChunkSize) {
		pageSize = uint64(n.opts.MaxChunkSize)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	return FetchResult{
		Head:    n.log.head(),
		Entries: n.store.page(int(begin), int(pageSize)),
		Diff:    n.log.diffSince(head),
	}, nil
}

func (n *nodeImpl) Dump(w io.Writer) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	var err error
	n.store.each(func(e kv.Entry) bool {
		_, err = fmt.Fprintf(w, "%s - %s\n", e.Key, e.Value)
		return err == nil
	})
	return err
}
