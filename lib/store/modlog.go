package store

import "github.com/ValentinKolb/bKV/lib/kv"

// modBatch is one recorded append: the head it produced plus the
// modifications that were applied, in application order.
type modBatch struct {
	head uint32
	mods []kv.Modification
}

// modificationLog is a bounded log of the most recent modification batches.
// Batches are kept oldest-first; once the capacity is exceeded the oldest
// batch is evicted. Eviction never un-applies anything: the store already
// reflects every batch ever recorded.
//
// Thread-safety: none. The owning node serializes all access.
type modificationLog struct {
	batches  []modBatch
	capacity int
}

func newModificationLog(capacity int) *modificationLog {
	return &modificationLog{
		batches:  make([]modBatch, 0, capacity+1),
		capacity: capacity,
	}
}

// record appends mods as a new batch and returns the head that identifies
// it. The head increases by exactly 1 per record call (empty batches
// included) and wraps at the uint32 boundary.
func (l *modificationLog) record(mods []kv.Modification) uint32 {
	newHead := l.head() + 1

	l.batches = append(l.batches, modBatch{head: newHead, mods: mods})
	if len(l.batches) > l.capacity {
		copy(l.batches, l.batches[1:])
		l.batches[len(l.batches)-1] = modBatch{}
		l.batches = l.batches[:l.capacity]
	}

	return newHead
}

// head returns the head of the most recent batch, or 0 if the log is empty.
func (l *modificationLog) head() uint32 {
	if len(l.batches) == 0 {
		return 0
	}
	return l.batches[len(l.batches)-1].head
}

// diffSince accumulates batches from newest to oldest and stops (excluding)
// at the batch whose head equals h. If no retained batch carries that head
// (evicted, or never recorded) the entire retained log is returned; the
// caller cannot distinguish this from an ordinary large diff and must treat
// it as a full resync.
//
// The accumulated sequence runs newest batch first (modifications within a
// batch keep their original order). Replaying it verbatim therefore applies
// older cross-batch modifications after newer ones for the same key.
func (l *modificationLog) diffSince(h uint32) []kv.Modification {
	var ret []kv.Modification
	for i := len(l.batches) - 1; i >= 0; i-- {
		if l.batches[i].head == h {
			break
		}
		ret = append(ret, l.batches[i].mods...)
	}
	return ret
}

// length returns how many batches are currently retained.
func (l *modificationLog) length() int {
	return len(l.batches)
}

// oldestHead returns the head of the oldest retained batch, or 0 if the
// log is empty.
func (l *modificationLog) oldestHead() uint32 {
	if len(l.batches) == 0 {
		return 0
	}
	return l.batches[0].head
}
