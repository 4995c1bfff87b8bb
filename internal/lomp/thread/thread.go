// Package thread implements the per-thread state every running worker
// carries: its team membership, task-scheduling bookkeeping, dynamic-loop
// progress, and the small amount of randomness it needs for stealing and
// backoff.
package thread

import (
	"sync/atomic"

	"github.com/parallel-runtimes/lomp/internal/lomp/rng"
	"github.com/parallel-runtimes/lomp/internal/lomp/task"
)

// ReductionKind records which strategy a thread chose for the reduction
// it is currently inside, so EndReduce can finish it the same way.
type ReductionKind int

const (
	UnknownReduction ReductionKind = iota
	AtomicReduction
	CriticalSectionReduction
	TreeReduction
)

// Thread is one team member's private state. A Thread is only ever
// touched by the goroutine it belongs to, except for its Pool (which
// other threads steal from) and ChildTasks (which a child task's
// completion decrements from whatever goroutine happens to finish it).
type Thread struct {
	LocalID  int
	GlobalID uint32

	Pool *task.Pool

	currentTask      *task.Descriptor
	currentTaskgroup *task.Taskgroup
	ChildTasks       atomic.Int64

	// Dynamic loop progress: how many dynamic loops this thread has
	// completed, and (while executing one) which ring slot it is using.
	// internal/lomp/team reads and writes these directly.
	DynamicLoopCount uint64
	CurrentLoop      any
	NextLoopChunk    uint64

	SinglesSeen uint64

	CurrentReduction ReductionKind

	Random *rng.MLFSR32
	Steal  task.Policy
}

// New creates a thread's state. localID is its team-relative rank
// (omp_get_thread_num()); globalID is a process-wide unique identity
// used as a thread's random seed and for tracing.
func New(localID int, globalID uint32, poolCapacity int, steal task.Policy) *Thread {
	return &Thread{
		LocalID:  localID,
		GlobalID: globalID,
		Pool:     task.NewPool(poolCapacity),
		Random:   rng.New(globalID + 1),
		Steal:    steal,
	}
}

func (t *Thread) CurrentTask() *task.Descriptor       { return t.currentTask }
func (t *Thread) SetCurrentTask(d *task.Descriptor)   { t.currentTask = d }
func (t *Thread) CurrentTaskgroup() *task.Taskgroup    { return t.currentTaskgroup }
func (t *Thread) SetCurrentTaskgroup(g *task.Taskgroup) { t.currentTaskgroup = g }

// NextRandom draws the thread's next pseudo-random value, used for
// victim selection and backoff jitter.
func (t *Thread) NextRandom() uint32 { return t.Random.Next() }

// FetchAndIncrSingleCount returns the number of single constructs this
// thread has previously seen, then increments the count: the value
// returned is the 0-based ordinal of the single construct now being
// entered.
func (t *Thread) FetchAndIncrSingleCount() uint64 {
	seen := t.SinglesSeen
	t.SinglesSeen++
	return seen
}
