package lomp

import "github.com/parallel-runtimes/lomp/internal/lomp/task"

// TaskHandle is an opaque handle to an explicit task, returned by
// TaskAlloc and consumed by Task, BeginIf0, and CompleteIf0. Unlike the
// source ABI's task_alloc, there is no separate closure-size/shareds-size
// negotiation: body and args already carry everything the task needs as
// an ordinary Go closure capture, so TaskHandle just wraps the
// descriptor the closure's lifetime is tracked through.
type TaskHandle = task.Descriptor

// TaskAlloc implements task_alloc: builds a task descriptor for body,
// parented to the calling thread's current task (or its implicit task if
// none) and whatever taskgroup is presently open. The task is not yet
// visible to anything else — call Task to schedule it.
func TaskAlloc(gtid int, body func(gtid int, args []any), args []any) *TaskHandle {
	return runtime().NewTask(gtid, body, args)
}

// Task implements the task entry point: submits a task built by
// TaskAlloc for execution, either by queuing it on the calling thread's
// pool or, if that pool is full, running it immediately inline.
func Task(gtid int, h *TaskHandle) {
	runtime().StoreTask(gtid, h)
}

// TaskWait implements taskwait: blocks the calling thread, scheduling
// whatever tasks it can find in the meantime, until every direct child
// of its current task (or of its implicit task, outside any explicit
// one) has completed.
func TaskWait(gtid int) {
	runtime().TaskWait(gtid)
}

// TaskgroupBegin implements the start of a taskgroup region.
func TaskgroupBegin(gtid int) {
	runtime().TaskgroupBegin(gtid)
}

// TaskgroupEnd implements the end of a taskgroup region: waits for every
// task transitively created inside it, not just direct children.
func TaskgroupEnd(gtid int) {
	runtime().TaskgroupEnd(gtid)
}

// BeginIf0 implements task_begin_if0: the compiler has decided to run
// this task's body inline on the encountering thread rather than
// deferring it (an if(0) clause, or a runtime fallback such as a full
// task pool). It accounts for the task exactly as Task would and
// installs it as the calling thread's current task, then returns
// immediately — the caller runs the body itself next, synchronously.
func BeginIf0(gtid int, h *TaskHandle) (previous *TaskHandle) {
	return runtime().PrepareIf0(gtid, h)
}

// CompleteIf0 implements task_complete_if0: completes the accounting
// BeginIf0 started, once the caller has finished running the task's body
// inline, and restores the thread's previous current task.
func CompleteIf0(gtid int, h *TaskHandle, previous *TaskHandle) {
	runtime().FinishIf0(gtid, h, previous)
}
