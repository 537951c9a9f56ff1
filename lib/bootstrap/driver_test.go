package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ValentinKolb/bKV/lib/kv"
	"github.com/ValentinKolb/bKV/lib/store"
)

// fakeRemote is a scripted remote node. It serves Info and Fetch from a
// fixed entry list and can inject extra diff modifications or transient
// failures per call.
type fakeRemote struct {
	mu       sync.Mutex
	entries  []kv.Modification // snapshot pages already expressed as update modifications
	head     uint32
	diffs    map[int][]kv.Modification // fetch round -> diff returned with that round
	failures int                       // number of calls that fail before one succeeds
	fetches  int
	infoGate chan struct{} // if set, Info blocks until the channel is closed
}

func (f *fakeRemote) Append(_ []kv.Modification) (uint32, error) {
	return 0, store.NewError(store.RetCUnsupportedOperation, "read-only fake")
}

func (f *fakeRemote) Info() (store.Info, error) {
	if f.infoGate != nil {
		<-f.infoGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return store.Info{}, errors.New("transient failure")
	}
	return store.Info{Head: f.head, Size: uint64(len(f.entries))}, nil
}

func (f *fakeRemote) Fetch(begin, end uint64, _ uint32) (store.FetchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return store.FetchResult{}, errors.New("transient failure")
	}
	round := f.fetches
	f.fetches++

	if begin > uint64(len(f.entries)) {
		begin = uint64(len(f.entries))
	}
	if end > uint64(len(f.entries)) {
		end = uint64(len(f.entries))
	}
	result := store.FetchResult{
		Head:    f.head,
		Entries: f.entries[begin:end],
		Diff:    f.diffs[round],
	}
	return result, nil
}

func (f *fakeRemote) Dump(_ io.Writer) error {
	return store.NewError(store.RetCUnsupportedOperation, "read-only fake")
}

var _ store.INode = (*fakeRemote)(nil)

func testEntries(n int) []kv.Modification {
	entries := make([]kv.Modification, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, kv.Update(fmt.Sprintf("key-%03d", i), strconv.Itoa(i)))
	}
	return entries
}

func testConfig() Config {
	return Config{
		FetchInterval: time.Millisecond,
		MaxChunkSize:  20,
		Retries:       3,
	}
}

func TestBootstrapCopiesAllEntries(t *testing.T) {
	remote := &fakeRemote{entries: testEntries(45), head: 7}
	local := store.NewNode(nil)

	driver := NewDriver(local, remote, testConfig())
	if driver.State() != StateInit {
		t.Fatalf("expected state INIT before run, got %s", driver.State())
	}

	if err := driver.Run(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if driver.State() != StateCaughtUp {
		t.Fatalf("expected state CAUGHT_UP, got %s", driver.State())
	}

	// 45 entries with a chunk size of 20 need exactly three fetch rounds
	if remote.fetches != 3 {
		t.Errorf("expected 3 fetch rounds, got %d", remote.fetches)
	}

	info, err := local.Info()
	if err != nil {
		t.Fatalf("local info failed: %v", err)
	}
	if info.Size != 45 {
		t.Errorf("expected 45 local entries, got %d", info.Size)
	}
}

func TestBootstrapAppliesDiff(t *testing.T) {
	remote := &fakeRemote{
		entries: testEntries(30),
		head:    3,
		diffs: map[int][]kv.Modification{
			// returned with the second chunk, as if written during the copy
			1: {kv.Update("late-arrival", "42"), kv.Delete("key-000")},
		},
	}
	local := store.NewNode(nil)

	driver := NewDriver(local, remote, testConfig())
	if err := driver.Run(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	var dump strings.Builder
	if err := local.Dump(&dump); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if !strings.Contains(dump.String(), "late-arrival - 42") {
		t.Errorf("diff update not applied, dump:\n%s", dump.String())
	}
	if strings.Contains(dump.String(), "key-000 - 0") {
		t.Errorf("diff delete not applied, dump:\n%s", dump.String())
	}
}

func TestBootstrapRetriesTransientFailures(t *testing.T) {
	remote := &fakeRemote{entries: testEntries(5), head: 1, failures: 2}
	local := store.NewNode(nil)

	driver := NewDriver(local, remote, testConfig())
	if err := driver.Run(context.Background()); err != nil {
		t.Fatalf("bootstrap should survive transient failures, got: %v", err)
	}

	info, _ := local.Info()
	if info.Size != 5 {
		t.Errorf("expected 5 local entries, got %d", info.Size)
	}
}

func TestBootstrapFailsWhenRetriesExhausted(t *testing.T) {
	remote := &fakeRemote{entries: testEntries(5), head: 1, failures: 100}
	local := store.NewNode(nil)

	driver := NewDriver(local, remote, testConfig())
	if err := driver.Run(context.Background()); err == nil {
		t.Fatal("expected error when the remote keeps failing")
	}
	if driver.State() != StateCancelled {
		t.Errorf("expected state CANCELLED, got %s", driver.State())
	}
}

func TestBootstrapObservesCancellation(t *testing.T) {
	remote := &fakeRemote{entries: testEntries(100), head: 1}
	local := store.NewNode(nil)

	config := testConfig()
	config.FetchInterval = time.Hour // the run must end via the context, not the timer

	ctx, cancel := context.WithCancel(context.Background())
	driver := NewDriver(local, remote, config)

	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	// give the driver time to fetch the first chunk, then read the state
	// from this goroutine while Run is still in flight
	time.Sleep(50 * time.Millisecond)
	if driver.State() != StateFetching {
		t.Errorf("expected state FETCHING during the run, got %s", driver.State())
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not observe cancellation")
	}

	if driver.State() != StateCancelled {
		t.Errorf("expected state CANCELLED, got %s", driver.State())
	}
}

func TestBootstrapStaysInitUntilRemoteInfo(t *testing.T) {
	gate := make(chan struct{})
	remote := &fakeRemote{entries: testEntries(5), head: 1, infoGate: gate}
	local := store.NewNode(nil)

	driver := NewDriver(local, remote, testConfig())

	done := make(chan error, 1)
	go func() { done <- driver.Run(context.Background()) }()

	// the remote info call has not succeeded yet, so the driver is still
	// in its initial phase
	time.Sleep(50 * time.Millisecond)
	if driver.State() != StateInit {
		t.Errorf("expected state INIT before remote info succeeds, got %s", driver.State())
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if driver.State() != StateCaughtUp {
		t.Errorf("expected state CAUGHT_UP, got %s", driver.State())
	}
}

func TestBootstrapEmptyRemote(t *testing.T) {
	remote := &fakeRemote{entries: nil, head: 0}
	local := store.NewNode(nil)

	driver := NewDriver(local, remote, testConfig())
	if err := driver.Run(context.Background()); err != nil {
		t.Fatalf("bootstrap of empty remote failed: %v", err)
	}
	if driver.State() != StateCaughtUp {
		t.Fatalf("expected state CAUGHT_UP, got %s", driver.State())
	}
	if remote.fetches != 0 {
		t.Errorf("expected no fetches for an empty remote, got %d", remote.fetches)
	}
}
