package store

import (
	"github.com/ValentinKolb/bKV/lib/kv"
	"github.com/google/btree"
)

// btreeDegree balances node fan-out against rebalancing cost for the
// expected store sizes (thousands to low millions of keys).
const btreeDegree = 32

// keyValueStore is an ordered key-value map. Ordering by key makes the
// paginated snapshot export deterministic for a single call.
//
// Thread-safety: none. The owning node serializes all access.
type keyValueStore struct {
	tree *btree.BTreeG[kv.Entry]
}

func newKeyValueStore() *keyValueStore {
	return &keyValueStore{
		tree: btree.NewG(btreeDegree, func(a, b kv.Entry) bool {
			return a.Key < b.Key
		}),
	}
}

// apply executes a single modification against the store. Applying the
// same modification twice leaves the store in the same state as applying
// it once. Unknown operations are skipped; the deserializers reject them
// before they can reach a store.
func (s *keyValueStore) apply(m kv.Modification) {
	switch m.Op {
	case kv.OpUpdate:
		s.tree.ReplaceOrInsert(kv.Entry{Key: m.Key, Value: m.Value})
	case kv.OpDelete:
		s.tree.Delete(kv.Entry{Key: m.Key})
	}
}

// page returns up to count entries starting at the offset-th key in
// ascending key order, re-expressed as update modifications.
//
// The result is deterministic for a single call. If keys are inserted or
// removed between two calls, the ordinal position of later entries shifts,
// so a caller paginating across calls can observe duplicate or skipped
// entries and must tolerate both.
func (s *keyValueStore) page(offset, count int) []kv.Modification {
	if count <= 0 {
		return []kv.Modification{}
	}

	mods := make([]kv.Modification, 0, count)
	i := 0
	s.tree.Ascend(func(e kv.Entry) bool {
		if i >= offset {
			mods = append(mods, kv.Update(e.Key, e.Value))
		}
		i++
		return len(mods) < count
	})
	return mods
}

// size returns the number of live keys.
func (s *keyValueStore) size() int {
	return s.tree.Len()
}

// each calls fn for every entry in ascending key order until fn returns
// false.
func (s *keyValueStore) each(fn func(e kv.Entry) bool) {
	s.tree.Ascend(fn)
}
