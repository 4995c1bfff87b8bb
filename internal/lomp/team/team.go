// Package team implements the thread team: fork/join, the worker loop
// that sits in the barrier waiting for work, and the task-draining
// check-in wrapper that couples the barrier zoo to the tasking
// subsystem without either package needing to know about the other.
package team

import (
	"sync"
	"sync/atomic"

	"github.com/parallel-runtimes/lomp/internal/lomp/barrier"
	"github.com/parallel-runtimes/lomp/internal/lomp/env"
	"github.com/parallel-runtimes/lomp/internal/lomp/fatal"
	"github.com/parallel-runtimes/lomp/internal/lomp/lock"
	"github.com/parallel-runtimes/lomp/internal/lomp/loop"
	"github.com/parallel-runtimes/lomp/internal/lomp/numa"
	"github.com/parallel-runtimes/lomp/internal/lomp/task"
	"github.com/parallel-runtimes/lomp/internal/lomp/thread"
)

// Team is the thread team a parallel region runs on: its barrier, its
// per-thread state, and the bookkeeping that coordinates tasking,
// reductions, and loop scheduling across its members.
type Team struct {
	threads []*thread.Thread
	b       barrier.Barrier
	numa    numa.Oracle
	icvs    env.ICVs

	parallel   atomic.Bool
	activeTasks atomic.Int64
	nextSingle atomic.Uint64

	criticalLocks *lock.Table
	reductionLock *lock.Lock

	runtimeMu       sync.Mutex
	runtimeSchedule env.Schedule

	// loops is the ring of in-flight worksharing-loop descriptors,
	// indexed by each thread's own DynamicLoopCount: since every thread
	// executes the same sequence of worksharing constructs, the Nth
	// loop a thread enters is always the same loop everywhere, so no
	// shared sequence counter is needed.
	loops *loop.Ring
}

// New builds a team of n threads using the barrier and steal policy
// named by icvs, with a flat NUMA oracle (real topology discovery is
// out of scope; see internal/lomp/numa).
func New(n int, icvs env.ICVs) *Team {
	b, err := barrier.New(icvs.BarrierKind, n)
	if err != nil {
		fatal.Abort(fatal.UnknownBarrier, "%s", err)
	}
	oracle := numa.Oracle(numa.NewFlat(n))

	t := &Team{
		threads:         make([]*thread.Thread, n),
		b:               b,
		numa:            oracle,
		icvs:            icvs,
		criticalLocks:   lock.NewTable(),
		reductionLock:   lock.New(lock.HintNone),
		runtimeSchedule: icvs.Schedule,
		loops:           loop.NewRing(),
	}
	for i := 0; i < n; i++ {
		t.threads[i] = thread.New(i, uint32(i), task.DefaultCapacity, stealPolicyFor(icvs.StealPolicy, i, oracle))
		oracle.Register(i)
	}
	return t
}

func stealPolicyFor(kind env.StealPolicy, me int, oracle numa.Oracle) task.Policy {
	switch kind {
	case env.RoundRobin:
		return task.RoundRobin{}
	case env.RandomUnif:
		return task.NewRandomUniform(uint32(me) + 1)
	default:
		return task.NewNUMAAware(oracle)
	}
}

func (t *Team) Barrier() barrier.Barrier   { return t.b }
func (t *Team) Count() int                 { return len(t.threads) }
func (t *Team) Thread(id int) *thread.Thread { return t.threads[id] }
func (t *Team) InParallel() bool           { return t.parallel.Load() }
func (t *Team) CriticalLocks() *lock.Table { return t.criticalLocks }

// PoolAt satisfies task.Pools so the stealers can reach every thread's
// pool through the team.
func (t *Team) PoolAt(id int) *task.Pool { return t.threads[id].Pool }

func (t *Team) RuntimeSchedule() env.Schedule {
	t.runtimeMu.Lock()
	defer t.runtimeMu.Unlock()
	return t.runtimeSchedule
}

func (t *Team) SetRuntimeSchedule(s env.Schedule) {
	t.runtimeMu.Lock()
	t.runtimeSchedule = s
	t.runtimeMu.Unlock()
}

// TryIncrementNextSingle implements the OpenMP "single" construct's
// ordinal assignment: the first thread to claim ordinal oldVal wins the
// single region for this occurrence; everyone else moves on.
func (t *Team) TryIncrementNextSingle(oldVal uint64) bool {
	return t.nextSingle.CompareAndSwap(oldVal, oldVal+1)
}

// NextSingle returns the current single-construct ordinal counter.
func (t *Team) NextSingle() uint64 { return t.nextSingle.Load() }

// EnterLoop claims or waits for the ring slot belonging to the calling
// thread's seq-th worksharing loop. If owner is true, the caller is
// responsible for building the loop's Descriptor, storing it with
// loop.Ring.SetDescriptor via Loops(), and calling CompleteLoopInit.
// Otherwise the descriptor is already there by the time EnterLoop
// returns.
func (t *Team) EnterLoop(seq int32) (idx int, owner bool) {
	idx = loop.SlotIndex(seq)
	return idx, t.loops.Enter(idx, seq)
}

// CompleteLoopInit publishes a newly built loop descriptor to every
// other thread waiting in EnterLoop for the same slot.
func (t *Team) CompleteLoopInit(idx int) {
	t.loops.CompleteInit(idx, int32(len(t.threads)))
}

// Loops exposes the underlying ring so callers can get/set the
// concrete *loop.Descriptor[T] for a slot index.
func (t *Team) Loops() *loop.Ring { return t.loops }

// LeaveLoop records that the calling thread is done with ring slot idx.
func (t *Team) LeaveLoop(idx int) { t.loops.Leave(idx) }

// Fork runs body on every thread of the team: thread 0 (the caller) and
// every worker, then waits for them all to finish before returning.
// Nested parallelism is not supported: calling Fork while the team is
// already inside a parallel region is fatal.
func (t *Team) Fork(body func(gtid, ltid int, args []any), args []any) {
	if t.parallel.Load() {
		fatal.Abort(fatal.NestedParallel, "nested parallel regions are not supported")
	}
	t.parallel.Store(true)

	inv := &barrier.Invocation{Body: body, Args: args}
	t.b.WakeUp(0, inv)
	t.activeTasks.Add(1)
	body(0, 0, args)
	t.activeTasks.Add(-1)
	t.CheckIn(0, false)

	t.parallel.Store(false)
}

// Worker is a team member's outer loop: it waits in the barrier for
// work, runs it, and checks back in, forever. Run it in its own
// goroutine for every thread other than 0.
func (t *Team) Worker(me int) {
	for {
		inv := t.b.CheckOut(false, me)
		t.activeTasks.Add(1)
		inv.Body(me, me, inv.Args)
		t.activeTasks.Add(-1)
		t.CheckIn(me, false)
	}
}

// CheckIn is the non-virtual wrapper around the barrier's check-in: it
// drains the local task pool (and steals from others) while waiting so
// that a thread idle at a barrier still makes progress on outstanding
// tasks, then delegates to the barrier's check-in phase only. This is
// the join half of fork/join (team.go's Fork and Worker): the release
// side is supplied separately there (Worker's next CheckOut call, or
// Fork simply returning), so check-in alone is correct for that path.
// internalBarrier selects how far an idle thread drains: false (the
// fork/join path, where every implicit task has already finished) waits
// until the whole team's task count reaches zero; true (a barrier inside
// a region, where each thread's implicit task is still counted) waits
// until the count is down to the team size, i.e. no explicit task is
// outstanding.
func (t *Team) CheckIn(me int, internalBarrier bool) bool {
	t.drainTasks(me, internalBarrier)
	return t.b.CheckIn(me)
}

// FullBarrier implements a plain #pragma omp barrier (or any other
// construct, such as end-reduce, that needs the same stop-everyone
// semantics): every thread drains outstanding tasks until no explicit
// task is left (the team's task count is down to the team size, the
// implicit tasks still running), then both checks in and waits to be
// checked out again, so no thread may proceed past this call until
// every thread has reached it. Unlike CheckIn alone, this is safe to
// call from any thread, not just the one driving fork/join.
func (t *Team) FullBarrier(me int) {
	t.drainTasks(me, true)
	t.b.FullBarrier(me)
}

func (t *Team) drainTasks(me int, internalBarrier bool) {
	goal := int64(0)
	if internalBarrier {
		goal = int64(len(t.threads))
	}
	for t.activeTasks.Load() != goal {
		for t.ScheduleTask(me) {
		}
	}
}
