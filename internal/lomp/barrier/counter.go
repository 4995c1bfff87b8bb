package barrier

import (
	"runtime"
	"sync/atomic"

	"github.com/parallel-runtimes/lomp/internal/lomp/cache"
)

// Counter tracks which threads have arrived at a barrier. Thread zero is
// always the one CheckIn designates as root: every implementation here
// guarantees CheckIn(0) is the only call that can return true, so a
// centralized barrier never needs to ask "who got here last" beyond that.
type Counter interface {
	// CheckIn records that me has arrived, returning true iff me == 0.
	CheckIn(me int) bool
	// Wait blocks the root until every thread has checked in. Callers
	// other than the root never call this.
	Wait()
	// Reset prepares the counter for the next barrier use. Callers
	// other than the root never call this.
	Reset()
	Name() string
}

func backoff(spins *int) {
	*spins++
	if *spins&0xff == 0 {
		runtime.Gosched()
	}
}

// AtomicCounter is a single shared arrival count, incremented by every
// checking-in thread.
type AtomicCounter struct {
	_       cache.Pad
	present atomic.Int32
	n       int32
	_       cache.Pad
}

func NewAtomicCounter(n int) *AtomicCounter {
	return &AtomicCounter{n: int32(n)}
}

func (c *AtomicCounter) CheckIn(me int) bool {
	c.present.Add(1)
	return me == 0
}

func (c *AtomicCounter) Wait() {
	spins := 0
	for c.present.Load() != c.n {
		backoff(&spins)
	}
}

func (c *AtomicCounter) Reset()      { c.present.Store(0) }
func (c *AtomicCounter) Name() string { return "atomic" }

// FlagCounter has each thread set its own byte; the root polls the whole
// array. Less contended than a single shared counter under a fetch-add
// storm, at the cost of an O(n) scan by the root.
type FlagCounter struct {
	flags []atomic.Bool
}

func NewFlagCounter(n int) *FlagCounter {
	return &FlagCounter{flags: make([]atomic.Bool, n)}
}

func (c *FlagCounter) CheckIn(me int) bool {
	c.flags[me].Store(true)
	return me == 0
}

func (c *FlagCounter) Wait() {
	spins := 0
	for i := 1; i < len(c.flags); i++ {
		for !c.flags[i].Load() {
			backoff(&spins)
		}
	}
}

func (c *FlagCounter) Reset() {
	for i := range c.flags {
		c.flags[i].Store(false)
	}
}

func (c *FlagCounter) Name() string { return "flag" }

type subCounter struct {
	present atomic.Int32
	target  int32
}

// FixedTreeCounter arranges threads into a static fan-in tree: thread i
// is responsible for waiting on its own children (if any) before
// signalling its parent. Double-buffered per-node counters (indexed by
// each thread's own call parity) let the tree be reused without an
// explicit reset race.
type FixedTreeCounter struct {
	n           int
	fanIn       int
	parent      []int
	numChildren []int
	seq         []int32
	nodes       [2][]subCounter
}

func NewFixedTreeCounter(n, fanIn int) *FixedTreeCounter {
	t := &FixedTreeCounter{
		n:           n,
		fanIn:       fanIn,
		parent:      make([]int, n),
		numChildren: make([]int, n),
		seq:         make([]int32, n),
	}
	t.nodes[0] = make([]subCounter, n)
	t.nodes[1] = make([]subCounter, n)
	for me := 0; me < n; me++ {
		t.parent[me] = (me+fanIn-1)/fanIn - 1
		children := 0
		if fanIn*me < n {
			if fanIn*(me+1) >= n {
				children = n - me*fanIn - 1
			} else {
				children = fanIn
			}
		}
		t.numChildren[me] = children
		t.nodes[0][me].target = int32(children)
		t.nodes[1][me].target = int32(children)
	}
	return t
}

func (t *FixedTreeCounter) CheckIn(me int) bool {
	parity := t.seq[me] & 1
	t.seq[me]++
	if t.numChildren[me] > 0 {
		c := &t.nodes[parity][me]
		spins := 0
		for c.present.Load() != c.target {
			backoff(&spins)
		}
		c.present.Store(0)
	}
	if me != 0 {
		t.nodes[parity][t.parent[me]].present.Add(1)
	}
	return me == 0
}

// Wait and Reset are no-ops: the root already waited for its children
// (and transitively, for everyone) inline within CheckIn.
func (t *FixedTreeCounter) Wait()       {}
func (t *FixedTreeCounter) Reset()      {}
func (t *FixedTreeCounter) Name() string { return "fixed-tree" }

// DynamicTreeCounter is a binary single-elimination tournament: in round
// r, the thread with bit r clear waits for the thread obtained by
// setting bit r (its "opponent" for that round) and advances; the
// opponent signals and drops out. Only thread 0, whose bits are all
// clear, survives every round, so it is always the root.
type DynamicTreeCounter struct {
	n      int
	rounds int
	flags  [][]atomic.Bool // flags[round][thread]
}

func NewDynamicTreeCounter(n int) *DynamicTreeCounter {
	rounds := 0
	for (1 << rounds) < n {
		rounds++
	}
	t := &DynamicTreeCounter{n: n, rounds: rounds, flags: make([][]atomic.Bool, rounds)}
	for r := range t.flags {
		t.flags[r] = make([]atomic.Bool, n)
	}
	return t
}

func (t *DynamicTreeCounter) CheckIn(me int) bool {
	spins := 0
	for r := 0; r < t.rounds; r++ {
		if (me>>uint(r))&1 == 1 {
			t.flags[r][me].Store(true)
			return false
		}
		partner := me | (1 << uint(r))
		if partner < t.n {
			for !t.flags[r][partner].Load() {
				backoff(&spins)
			}
			t.flags[r][partner].Store(false)
		}
	}
	return true
}

func (t *DynamicTreeCounter) Wait()       {}
func (t *DynamicTreeCounter) Reset()      {}
func (t *DynamicTreeCounter) Name() string { return "dynamic-tree" }
