package loop

import (
	"runtime"
	"sync/atomic"
)

// Slots bounds how many loops without a trailing barrier (nowait) can
// be in flight on one team at once; it must be a power of two so a
// loop's sequence number maps onto a slot with a simple mask.
const Slots = 16

// Ring is the fixed pool of loop descriptor slots a team hands out one
// per encountered worksharing loop, indexed by the loop's sequence
// number modulo Slots and reused once every thread has left it.
type Ring struct {
	slots [Slots]slot
}

type slot struct {
	refCount atomic.Int32
	sequence atomic.Int32 // -1 means free
	desc     atomic.Pointer[any]
}

// NewRing creates an all-free ring.
func NewRing() *Ring {
	r := &Ring{}
	for i := range r.slots {
		r.slots[i].sequence.Store(-1)
	}
	return r
}

// SlotIndex maps a loop's monotonically increasing sequence number onto
// its ring slot.
func SlotIndex(seq int32) int { return int(seq) & (Slots - 1) }

// Enter claims slot idx for sequence number seq. It reports true if the
// caller is the thread responsible for initializing the descriptor (and
// must call CompleteInit once done); false means the slot was already
// initialized for this sequence number by someone else, possibly after
// a brief wait for them to finish.
func (r *Ring) Enter(idx int, seq int32) (owner bool) {
	s := &r.slots[idx]
	for {
		if s.sequence.Load() == seq && s.refCount.Load() != 0 {
			return false
		}
		if s.sequence.CompareAndSwap(-1, seq) {
			return true
		}
		runtime.Gosched()
	}
}

// CompleteInit publishes a freshly initialized descriptor to every
// thread that may be waiting in Enter, and records how many threads
// must call Leave before the slot is recycled.
func (r *Ring) CompleteInit(idx int, threadCount int32) {
	r.slots[idx].refCount.Store(threadCount)
}

// Leave records that the calling thread is done with slot idx. Once
// every thread that entered has left, the slot is freed for reuse.
func (r *Ring) Leave(idx int) {
	s := &r.slots[idx]
	if s.refCount.Add(-1) == 0 {
		s.sequence.Store(-1)
	}
}

// SetDescriptor stashes the concrete *Descriptor[T] for slot idx.
func (r *Ring) SetDescriptor(idx int, d any) {
	r.slots[idx].desc.Store(&d)
}

// Descriptor retrieves whatever was last stashed with SetDescriptor,
// nil if nothing has been stored yet.
func (r *Ring) Descriptor(idx int) any {
	p := r.slots[idx].desc.Load()
	if p == nil {
		return nil
	}
	return *p
}
