package team

import (
	"github.com/parallel-runtimes/lomp/internal/lomp/task"
	"github.com/parallel-runtimes/lomp/internal/lomp/thread"
)

// NewTask creates a task descriptor for a #pragma omp task construct
// encountered by thread me, parented to its currently executing task
// (the implicit task if it is not inside an explicit one) and to
// whatever taskgroup is currently open.
func (t *Team) NewTask(me int, body func(gtid int, args []any), args []any) *task.Descriptor {
	th := t.threads[me]
	d := task.New(th.CurrentTask(), me, th.CurrentTaskgroup(), body, args)
	return d
}

// StoreTask enqueues a newly created task on its creator's pool,
// accounting it against the team, its parent, and its taskgroup. A
// full pool runs the task immediately instead (the original's
// "if the queue is full, just run it" fallback), which is why StoreTask
// itself never fails: it always returns having made the task's
// completion guaranteed one way or another.
func (t *Team) StoreTask(me int, d *task.Descriptor) {
	t.prepareTask(d)
	if !t.threads[me].Pool.Put(d) {
		t.runTask(me, d)
	}
}

func (t *Team) prepareTask(d *task.Descriptor) {
	t.activeTasks.Add(1)
	if d.Taskgroup != nil {
		d.Taskgroup.ActiveTasks.Add(1)
	}
	if d.Parent != nil {
		d.Parent.ChildTasks.Add(1)
	} else {
		t.threads[d.ThreadID].ChildTasks.Add(1)
	}
}

// PrepareIf0 accounts for a #pragma omp task if(0) construct the same way
// any other task is accounted for, then installs it as the calling
// thread's current task so the body the caller is about to run inline
// sees the right parent for anything it creates. It never touches a
// pool: an if(0) task always runs on the thread that encountered it,
// synchronously, with no deferral.
func (t *Team) PrepareIf0(me int, d *task.Descriptor) (previous *task.Descriptor) {
	t.prepareTask(d)
	th := t.threads[me]
	previous = th.CurrentTask()
	th.SetCurrentTask(d)
	return previous
}

// FinishIf0 completes the bookkeeping PrepareIf0 started and restores the
// thread's previous current task, once the caller has finished running
// the if(0) task's body inline.
func (t *Team) FinishIf0(me int, d *task.Descriptor, previous *task.Descriptor) {
	t.completeTask(d)
	t.threads[me].SetCurrentTask(previous)
}

// ScheduleTask tries to execute one task: first from the calling
// thread's own pool (LIFO, cheapest), then stolen from another thread's
// pool via its configured steal policy. It reports whether it found
// and ran a task, so callers can loop "while there is work" without an
// explicit idle spin.
func (t *Team) ScheduleTask(me int) bool {
	th := t.threads[me]
	d := th.Pool.Get()
	if d == nil && th.Steal != nil {
		d = th.Steal.Steal(me, t)
	}
	if d == nil {
		return false
	}
	t.runTask(me, d)
	return true
}

func (t *Team) runTask(me int, d *task.Descriptor) {
	th := t.threads[me]
	prevTask := th.CurrentTask()
	th.SetCurrentTask(d)
	d.Body(me, d.Args)
	th.SetCurrentTask(prevTask)

	t.completeTask(d)
}

func (t *Team) completeTask(d *task.Descriptor) {
	t.activeTasks.Add(-1)
	if d.Taskgroup != nil {
		d.Taskgroup.ActiveTasks.Add(-1)
	}
	if d.Parent != nil {
		d.Parent.ChildTasks.Add(-1)
	} else {
		t.threads[d.ThreadID].ChildTasks.Add(-1)
	}
}

// TaskWait implements #pragma omp taskwait: block the calling thread,
// scheduling whatever tasks it can find, until every child of its
// current task (or, outside any task, every child task it has directly
// created) has completed.
func (t *Team) TaskWait(me int) {
	th := t.threads[me]
	target := childCounter(th)
	for target.Load() != 0 {
		for t.ScheduleTask(me) {
		}
	}
}

func childCounter(th *thread.Thread) *taskOrThreadCounter {
	if cur := th.CurrentTask(); cur != nil {
		return &taskOrThreadCounter{task: cur}
	}
	return &taskOrThreadCounter{thread: th}
}

// taskOrThreadCounter reads whichever of a Descriptor's or a Thread's
// ChildTasks applies, so TaskWait has one code path for both the
// explicit-task and implicit-task cases.
type taskOrThreadCounter struct {
	task   *task.Descriptor
	thread *thread.Thread
}

func (c *taskOrThreadCounter) Load() int64 {
	if c.task != nil {
		return int64(c.task.ChildTasks.Load())
	}
	return c.thread.ChildTasks.Load()
}

// TaskgroupBegin implements #pragma omp taskgroup: opens a new
// taskgroup nested inside whatever one (if any) was already open on
// the calling thread.
func (t *Team) TaskgroupBegin(me int) {
	th := t.threads[me]
	th.SetCurrentTaskgroup(task.NewTaskgroup(th.CurrentTaskgroup()))
}

// TaskgroupEnd implements the end of a taskgroup region: wait for every
// task transitively created inside it to finish, then pop back to the
// enclosing taskgroup (or none).
func (t *Team) TaskgroupEnd(me int) {
	th := t.threads[me]
	g := th.CurrentTaskgroup()
	for g.ActiveTasks.Load() != 0 {
		for t.ScheduleTask(me) {
		}
	}
	th.SetCurrentTaskgroup(g.Outer)
}
