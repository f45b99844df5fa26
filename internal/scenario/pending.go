package scenario

import "sync/atomic"

// emptySlot is the sentinel stored in a slot with no reply since the last
// drain: a zero-length, non-nil byte slice. A nil pointer means the slot
// hasn't been sized yet (index out of range); an empty slice means "no
// reply stored".
var emptySlot = []byte{}

// PendingReplyBuffer is the fixed-size vehicleIndex -> serialized reply
// mapping described in §3. Each slot is an independent atomic pointer so
// that writes to distinct vehicle indices never contend; two writers
// racing on the *same* index (duplicate reply, §7) still land safely,
// just with the usual last-writer-wins outcome the spec calls advisory.
type PendingReplyBuffer struct {
	slots  []atomic.Pointer[[]byte]
	cursor atomic.Int32
}

// NewPendingReplyBuffer allocates n empty slots, one per registered
// vehicle.
func NewPendingReplyBuffer(n int) *PendingReplyBuffer {
	b := &PendingReplyBuffer{slots: make([]atomic.Pointer[[]byte], n)}
	for i := range b.slots {
		empty := emptySlot
		b.slots[i].Store(&empty)
	}
	return b
}

// Grow appends one more empty slot, used as vehicles register one at a
// time during REGISTERING. It mutates the backing slice directly and is not
// itself safe for concurrent calls; callers must serialize it against the
// registry's index-allocation critical section (Registry.Allocate's
// onAllocated hook does this).
func (b *PendingReplyBuffer) Grow() {
	empty := emptySlot
	b.slots = append(b.slots, atomic.Pointer[[]byte]{})
	b.slots[len(b.slots)-1].Store(&empty)
}

// Len reports the number of slots, i.e. numRegisteredVehicles.
func (b *PendingReplyBuffer) Len() int { return len(b.slots) }

// IsEmpty reports whether the slot at idx currently holds no reply.
func (b *PendingReplyBuffer) IsEmpty(idx VehicleIndex) bool {
	if int(idx) >= len(b.slots) {
		return true
	}
	p := b.slots[idx].Load()
	return p == nil || len(*p) == 0
}

// StoreResult reports whether a Store call overwrote a slot that already
// held an unread reply (§7 duplicate/late reply).
type StoreResult struct {
	Overwrote bool
}

// Store writes data into the slot for idx, last-writer-wins. It reports
// whether the slot already held a non-empty reply so the caller can log
// the duplicate (§4.3).
func (b *PendingReplyBuffer) Store(idx VehicleIndex, data []byte) StoreResult {
	if int(idx) >= len(b.slots) {
		return StoreResult{}
	}
	prev := b.slots[idx].Load()
	overwrote := prev != nil && len(*prev) > 0
	cp := append([]byte(nil), data...)
	b.slots[idx].Store(&cp)
	return StoreResult{Overwrote: overwrote}
}

// ResetCursor rewinds the drain cursor to 0 without touching slot
// contents, used when a full drain completes (§4.5 step 4).
func (b *PendingReplyBuffer) ResetCursor() { b.cursor.Store(0) }

// Cursor returns the current drain cursor position.
func (b *PendingReplyBuffer) Cursor() int32 { return b.cursor.Load() }

// DrainBatch walks the buffer from the current cursor, taking (and
// clearing) every non-empty slot until either the buffer is exhausted or a
// full batch of size batchSize has been examined. It returns the bytes
// found, in index order, and the index the walk stopped at, i.e. the
// number of slots examined since the start of this drain round, summed
// over all calls (for the numCars-completion check in §4.5).
func (b *PendingReplyBuffer) DrainBatch(batchSize int32) (out [][]byte, examined int32) {
	if batchSize <= 0 {
		batchSize = 32
	}
	start := b.cursor.Load()
	k := start
	n := int32(len(b.slots))
	for {
		if k >= n {
			break
		}
		p := b.slots[k].Load()
		if p != nil && len(*p) > 0 {
			out = append(out, *p)
			empty := emptySlot
			b.slots[k].Store(&empty)
		}
		k++
		if k >= n {
			break
		}
		if k%batchSize == 0 && k > start {
			break
		}
	}
	b.cursor.Store(k)
	if k >= n {
		b.cursor.Store(0)
	}
	return out, k
}
