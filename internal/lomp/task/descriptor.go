// Package task implements LOMP's tasking subsystem: task descriptors,
// taskgroups, the per-thread deque-backed task pool, and the stealing
// policies a thread with an empty pool can use to find work elsewhere.
package task

import "sync/atomic"

// State is a task's lifecycle stage.
type State int32

const (
	Created State = iota
	Executing
	Completed
)

// Taskgroup tracks the tasks created (transitively) under one
// #pragma omp taskgroup region, so TaskgroupEnd can wait for all of them
// rather than only the direct children a plain taskwait would cover.
type Taskgroup struct {
	Outer       *Taskgroup
	ActiveTasks atomic.Int64
}

// NewTaskgroup opens a taskgroup nested inside outer (nil at the top level).
func NewTaskgroup(outer *Taskgroup) *Taskgroup {
	return &Taskgroup{Outer: outer}
}

// Descriptor is the runtime's view of one explicit task: its outlined
// body, the arguments closed over it, and the bookkeeping needed to
// know when it (and its descendants) have finished.
type Descriptor struct {
	state atomic.Int32

	Parent     *Descriptor
	ThreadID   int // id of the thread that created this task
	ChildTasks atomic.Int32
	Taskgroup  *Taskgroup

	Body   func(gtid int, args []any)
	Args   []any
	PartID int32
}

// New creates a task descriptor for a not-yet-scheduled task. parent is
// the task that is encountering the task construct (nil for an implicit
// task created directly by a thread), and taskgroup is whichever
// taskgroup, if any, is currently open on the creating thread.
func New(parent *Descriptor, threadID int, taskgroup *Taskgroup, body func(int, []any), args []any) *Descriptor {
	return &Descriptor{
		Parent:    parent,
		ThreadID:  threadID,
		Taskgroup: taskgroup,
		Body:      body,
		Args:      args,
	}
}

func (d *Descriptor) State() State     { return State(d.state.Load()) }
func (d *Descriptor) setState(s State) { d.state.Store(int32(s)) }
