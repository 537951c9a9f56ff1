package store

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/bKV/lib/kv"
)

func TestNodeAppendAndInfo(t *testing.T) {
	n := NewNode(nil)

	if _, err := n.Append([]kv.Modification{kv.Update("a", "1")}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := n.Append([]kv.Modification{kv.Update("b", "2")}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	info, err := n.Info()
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if info.Head != 2 || info.Size != 2 {
		t.Errorf("expected (head=2, size=2), got (head=%d, size=%d)", info.Head, info.Size)
	}
}

func TestNodeAppendSingleBatch(t *testing.T) {
	n := NewNode(nil)

	// update and delete of the same key in one batch: one head advance,
	// net effect empty store
	head, err := n.Append([]kv.Modification{kv.Update("a", "1"), kv.Delete("a")})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if head != 1 {
		t.Errorf("expected head 1, got %d", head)
	}

	info, _ := n.Info()
	if info.Size != 0 {
		t.Errorf("expected size 0, got %d", info.Size)
	}
	if info.Head != 1 {
		t.Errorf("expected head 1, got %d", info.Head)
	}
}

func TestNodeFetch(t *testing.T) {
	n := NewNode(nil)
	if _, err := n.Append([]kv.Modification{kv.Update("a", "1"), kv.Update("b", "2")}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	res, err := n.Fetch(0, 1, 1)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0] != kv.Update("a", "1") {
		t.Errorf("expected entries [update(a=1)], got %v", res.Entries)
	}
	if len(res.Diff) != 0 {
		t.Errorf("expected empty diff for current head, got %v", res.Diff)
	}
	if res.Head != 1 {
		t.Errorf("expected head 1, got %d", res.Head)
	}
}

func TestNodeFetchReassemblesStore(t *testing.T) {
	n := NewNode(nil)

	want := map[string]string{}
	var mods []kv.Modification
	for i := 0; i < 15; i++ {
		key := fmt.Sprintf("key-%02d", i)
		val := fmt.Sprintf("val-%d", i)
		want[key] = val
		mods = append(mods, kv.Update(key, val))
	}
	if _, err := n.Append(mods); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	res, err := n.Fetch(0, uint64(len(want)), 0)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	got := map[string]string{}
	for _, m := range res.Entries {
		got[m.Key] = m.Value
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("key %s: expected %s, got %s", k, v, got[k])
		}
	}
}

func TestNodeFetchChunkCap(t *testing.T) {
	n := NewNode(&Options{MaxChunkSize: 5})

	var mods []kv.Modification
	for i := 0; i < 10; i++ {
		mods = append(mods, kv.Update(fmt.Sprintf("key-%02d", i), "v"))
	}
	if _, err := n.Append(mods); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	res, err := n.Fetch(0, 10, 0)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(res.Entries) != 5 {
		t.Errorf("expected page capped at 5 entries, got %d", len(res.Entries))
	}
}

func TestNodeFetchInvalidRange(t *testing.T) {
	n := NewNode(nil)

	_, err := n.Fetch(10, 5, 0)
	if err == nil {
		t.Fatal("expected error for end < begin, got nil")
	}

	var nodeErr *Error
	if !errors.As(err, &nodeErr) || nodeErr.Code != RetCInvalidArgument {
		t.Errorf("expected RetCInvalidArgument, got %v", err)
	}
}

func TestNodeConcurrentAppends(t *testing.T) {
	n := NewNode(nil)

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				key := fmt.Sprintf("writer-%d-key-%d", w, i)
				if _, err := n.Append([]kv.Modification{kv.Update(key, "v")}); err != nil {
					t.Errorf("append failed: %v", err)
				}
			}
		}(w)
	}
	wg.Wait()

	info, err := n.Info()
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if info.Size != writers*perWriter {
		t.Errorf("expected size %d, got %d", writers*perWriter, info.Size)
	}
	if info.Head != writers*perWriter {
		t.Errorf("expected head %d, got %d", writers*perWriter, info.Head)
	}
}

func TestNodeDump(t *testing.T) {
	n := NewNode(nil)
	if _, err := n.Append([]kv.Modification{kv.Update("b", "2"), kv.Update("a", "1")}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	var buf bytes.Buffer
	if err := n.Dump(&buf); err != nil {
		t.Fatalf("dump failed: %v", err)
	}

	want := "a - 1\nb - 2\n"
	if buf.String() != want {
		t.Errorf("expected dump %q, got %q", want, buf.String())
	}
}

func TestNodeStateEqualsReplay(t *testing.T) {
	n := NewNode(nil)

	batches := [][]kv.Modification{
		{kv.Update("a", "1"), kv.Update("b", "2")},
		{kv.Delete("a")},
		{kv.Update("c", "3"), kv.Update("b", "20")},
		{},
		{kv.Delete("missing")},
	}

	replay := map[string]string{}
	for _, batch := range batches {
		if _, err := n.Append(batch); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		for _, m := range batch {
			switch m.Op {
			case kv.OpUpdate:
				replay[m.Key] = m.Value
			case kv.OpDelete:
				delete(replay, m.Key)
			}
		}
	}

	info, _ := n.Info()
	if int(info.Size) != len(replay) {
		t.Errorf("expected size %d (replay), got %d", len(replay), info.Size)
	}
	if info.Head != uint32(len(batches)) {
		t.Errorf("expected head %d, got %d", len(batches), info.Head)
	}

	res, err := n.Fetch(0, info.Size, info.Head)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	for _, m := range res.Entries {
		if replay[m.Key] != m.Value {
			t.Errorf("key %s: expected %s, got %s", m.Key, replay[m.Key], m.Value)
		}
	}
}
