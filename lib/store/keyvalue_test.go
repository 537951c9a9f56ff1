package store

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/bKV/lib/kv"
)

func TestKeyValueStoreApply(t *testing.T) {
	s := newKeyValueStore()

	s.apply(kv.Update("a", "1"))
	s.apply(kv.Update("b", "2"))
	if s.size() != 2 {
		t.Fatalf("expected size 2, got %d", s.size())
	}

	// overwrite
	s.apply(kv.Update("a", "3"))
	if s.size() != 2 {
		t.Errorf("overwrite changed size: expected 2, got %d", s.size())
	}

	s.apply(kv.Delete("a"))
	if s.size() != 1 {
		t.Errorf("expected size 1 after delete, got %d", s.size())
	}

	// deleting an absent key is a no-op
	s.apply(kv.Delete("a"))
	if s.size() != 1 {
		t.Errorf("delete of absent key changed size: expected 1, got %d", s.size())
	}
}

func TestKeyValueStoreApplyIdempotent(t *testing.T) {
	s := newKeyValueStore()

	m := kv.Update("a", "1")
	s.apply(m)
	once := s.page(0, 10)

	s.apply(m)
	twice := s.page(0, 10)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("applying the same update twice changed the store:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestKeyValueStorePage(t *testing.T) {
	s := newKeyValueStore()
	// insert out of key order, pages must come back sorted
	s.apply(kv.Update("c", "3"))
	s.apply(kv.Update("a", "1"))
	s.apply(kv.Update("b", "2"))

	tests := []struct {
		name          string
		offset, count int
		want          []kv.Modification
	}{
		{"full", 0, 10, []kv.Modification{kv.Update("a", "1"), kv.Update("b", "2"), kv.Update("c", "3")}},
		{"first", 0, 1, []kv.Modification{kv.Update("a", "1")}},
		{"middle", 1, 1, []kv.Modification{kv.Update("b", "2")}},
		{"tail", 2, 10, []kv.Modification{kv.Update("c", "3")}},
		{"beyond", 5, 10, []kv.Modification{}},
		{"empty count", 0, 0, []kv.Modification{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.page(tt.offset, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("page(%d, %d): expected %d entries, got %d", tt.offset, tt.count, len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("page(%d, %d)[%d]: expected %v, got %v", tt.offset, tt.count, i, tt.want[i], got[i])
				}
			}
		})
	}
}
