package loop

import "sync/atomic"

// Descriptor is one worksharing loop's full scheduling state, shared by
// every thread that enters it. T is the loop induction variable's type,
// carried through from the compiler-facing ABI call that created it.
type Descriptor[T Integer] struct {
	Kind        Kind
	ThreadCount int

	canonical Canonical[T]

	// Shared cursor for Guided and MonotonicDynamic: the next
	// chunk-index not yet handed out to anyone.
	nextIteration atomic.Uint64

	// Per-thread ranges for NonmonotonicDynamic/Imbalanced (static
	// steal). Unused, left nil, for every other kind.
	work []ContiguousWork

	finished atomic.Bool
}

// NewDescriptor builds and initializes a descriptor for a loop over
// [base, end] stepped by incr with the given kind, chunk size, and team
// size.
func NewDescriptor[T Integer](kind Kind, base, end, incr T, chunk, threadCount int) *Descriptor[T] {
	d := &Descriptor[T]{Kind: kind, ThreadCount: threadCount}
	d.canonical.Init(base, end, incr, chunk)

	if kind == NonmonotonicDynamic || kind == Imbalanced {
		d.work = make([]ContiguousWork, threadCount)
		total := d.canonical.Count()
		for i := range d.work {
			if kind == Imbalanced {
				d.work[i].InitializeImbalanced(total, uint32(i))
			} else {
				d.work[i].InitializeBalanced(total, uint32(i), uint32(threadCount))
			}
			d.work[i].ZeroStarted()
		}
	}
	return d
}

// Canonical exposes the underlying canonical-form loop, used by the
// static dispatch path (which needs forStaticInit-style access rather
// than the chunk-at-a-time cursor the dynamic paths use).
func (d *Descriptor[T]) Canonical() *Canonical[T] { return &d.canonical }
