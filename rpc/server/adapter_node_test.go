package server

import (
	"testing"

	"github.com/ValentinKolb/bKV/lib/kv"
	"github.com/ValentinKolb/bKV/lib/store"
	"github.com/ValentinKolb/bKV/rpc/common"
)

func TestNodeAdapterInsertAndInfo(t *testing.T) {
	adapter := NewNodeServerAdapter()
	node := store.NewNode(nil)

	resp := adapter.Handle(common.NewInsertRequest([]kv.Modification{
		kv.Update("a", "1"),
		kv.Update("b", "2"),
	}), node)
	if resp.Err != "" {
		t.Fatalf("insert failed: %s", resp.Err)
	}
	if resp.Head != 1 {
		t.Errorf("expected head 1 in insert response, got %d", resp.Head)
	}

	resp = adapter.Handle(common.NewInfoRequest(), node)
	if resp.Err != "" {
		t.Fatalf("info failed: %s", resp.Err)
	}
	if resp.Head != 1 || resp.Size != 2 {
		t.Errorf("expected (head=1, size=2), got (head=%d, size=%d)", resp.Head, resp.Size)
	}
}

func TestNodeAdapterFetch(t *testing.T) {
	adapter := NewNodeServerAdapter()
	node := store.NewNode(nil)

	adapter.Handle(common.NewInsertRequest([]kv.Modification{
		kv.Update("a", "1"),
		kv.Update("b", "2"),
	}), node)

	resp := adapter.Handle(common.NewFetchRequest(0, 1, 1), node)
	if resp.Err != "" {
		t.Fatalf("fetch failed: %s", resp.Err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0] != kv.Update("a", "1") {
		t.Errorf("expected entries [update(a=1)], got %v", resp.Entries)
	}
	if len(resp.Diff) != 0 {
		t.Errorf("expected empty diff, got %v", resp.Diff)
	}
}

func TestNodeAdapterFetchInvalidRange(t *testing.T) {
	adapter := NewNodeServerAdapter()
	node := store.NewNode(nil)

	resp := adapter.Handle(common.NewFetchRequest(10, 5, 0), node)
	if resp.Err == "" {
		t.Error("expected error response for end < begin, got none")
	}

	// the node is untouched by the failed request
	info := adapter.Handle(common.NewInfoRequest(), node)
	if info.Head != 0 || info.Size != 0 {
		t.Errorf("node state changed by rejected request: (head=%d, size=%d)", info.Head, info.Size)
	}
}

func TestNodeAdapterUnsupportedType(t *testing.T) {
	adapter := NewNodeServerAdapter()
	node := store.NewNode(nil)

	resp := adapter.Handle(&common.Message{MsgType: common.MsgTSuccess}, node)
	if resp.MsgType != common.MsgTError || resp.Err == "" {
		t.Errorf("expected error response for unsupported message type, got %+v", resp)
	}
}

func TestNodeAdapterNilNode(t *testing.T) {
	adapter := NewNodeServerAdapter()

	resp := adapter.Handle(common.NewInfoRequest(), nil)
	if resp.MsgType != common.MsgTError {
		t.Errorf("expected error response for nil node, got %+v", resp)
	}
}
