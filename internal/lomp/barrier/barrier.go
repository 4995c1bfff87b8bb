// Package barrier implements the fork/join barrier zoo: a thread team's
// check-in counting, release broadcast, and the distributed variant that
// collapses both into a single phase.
//
// A centralized barrier composes two independent concerns: a Counter,
// which decides which thread is the one responsible for noticing that
// everybody else has arrived, and a Broadcast, which wakes the others
// once that has happened. Mixing and matching counters and broadcasts
// gives many distinct barriers from a small set of building blocks; a
// distributed barrier (Dissemination) instead does both at once and
// exposes only FullBarrier.
package barrier

// Invocation packages the outlined parallel-region body and its captured
// arguments so that thread zero can hand it to the rest of the team
// through the barrier's broadcast path.
type Invocation struct {
	Body func(gtid, ltid int, args []any)
	Args []any
}

// Barrier is the interface every barrier implementation in the zoo
// presents. The fork/join protocol uses CheckIn/WakeUp/CheckOut directly
// so that the wake (fork) and check-in (join) phases can be driven
// independently; FullBarrier is for plain synchronization with no
// associated invocation, such as an explicit barrier directive.
type Barrier interface {
	// CheckIn records that thread me has arrived. It returns true for
	// exactly one thread per call (the root), which alone may have more
	// work to do (waiting for the rest, then resetting the barrier for
	// reuse) before returning.
	CheckIn(me int) bool
	// WakeUp delivers inv to every thread waiting in CheckOut. Only the
	// root thread calls this directly; everyone else observes it by
	// returning from CheckOut.
	WakeUp(me int, inv *Invocation)
	// CheckOut is the release side: the root releases the team (calling
	// WakeUp with an optional invocation) and returns immediately,
	// while every other thread blocks until released.
	CheckOut(root bool, me int) *Invocation
	// FullBarrier performs a plain, no-result barrier: every thread
	// calls it and none proceed until they all have.
	FullBarrier(me int)
	// IsDistributed reports whether this barrier has no separate
	// check-in/check-out phases, only FullBarrier.
	IsDistributed() bool
	Name() string
}

// DefaultFullBarrier implements FullBarrier for any centralizing barrier
// in terms of its own CheckIn and CheckOut.
func DefaultFullBarrier(b Barrier, me int) {
	root := b.CheckIn(me)
	b.CheckOut(root, me)
}
