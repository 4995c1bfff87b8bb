package team

import (
	"github.com/parallel-runtimes/lomp/internal/lomp/env"
	"github.com/parallel-runtimes/lomp/internal/lomp/loop"
)

// DispatchInit implements dispatch_init: resolves the requested schedule
// (falling back to the team's current runtime schedule when requested
// names no kind, i.e. schedule(runtime)) and claims or joins this loop's
// ring slot, building a fresh Descriptor the first time any thread
// reaches a given dynamic instance.
//
// This is a package-level generic function rather than a method because
// Go methods cannot introduce new type parameters beyond their
// receiver's.
func DispatchInit[T loop.Integer](t *Team, me int, requested env.Schedule, base, end, incr T) {
	th := t.Thread(me)
	resolved := requested
	if resolved.Kind == "" {
		resolved = t.RuntimeSchedule()
	}
	kind, chunk := loop.Resolve(resolved, len(t.threads))

	seq := int32(th.DynamicLoopCount)
	idx, owner := t.EnterLoop(seq)
	if owner {
		d := loop.NewDescriptor[T](kind, base, end, incr, chunk, len(t.threads))
		t.Loops().SetDescriptor(idx, d)
		t.CompleteLoopInit(idx)
	}
	th.CurrentLoop = idx
	th.NextLoopChunk = 0
	if d := t.Loops().Descriptor(idx).(*loop.Descriptor[T]); d.Kind == loop.StaticChunked {
		// Cyclic chunks: thread me starts at chunk me and steps by the team size.
		th.NextLoopChunk = uint64(me)
	}
}

// DispatchNext implements dispatch_next: hands the calling thread its
// next chunk from the Descriptor DispatchInit built for this dynamic
// instance, or reports that the loop is exhausted and retires the
// thread's ring slot reference, advancing its finished-loop count so the
// next DispatchInit call claims the following ring slot.
func DispatchNext[T loop.Integer](t *Team, me int) (lb, ub, stride T, last, ok bool) {
	th := t.Thread(me)
	idx := th.CurrentLoop.(int)
	d := t.Loops().Descriptor(idx).(*loop.Descriptor[T])

	lb, ub, stride, last, ok = d.Dispatch(me, len(t.threads), &th.NextLoopChunk, th.NextRandom)
	if !ok {
		t.LeaveLoop(idx)
		th.DynamicLoopCount++
		th.CurrentLoop = nil
	}
	return
}
