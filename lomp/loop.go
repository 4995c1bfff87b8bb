package lomp

import (
	"github.com/parallel-runtimes/lomp/internal/lomp/env"
	"github.com/parallel-runtimes/lomp/internal/lomp/loop"
	"github.com/parallel-runtimes/lomp/internal/lomp/team"
)

// StaticKind names which of the two schedules known at compile time
// ForStaticInit computes: evenly-blocked or cyclic-chunked. Any other
// schedule must go through DispatchInit/DispatchNext instead.
type StaticKind = loop.Kind

const (
	StaticBlocked = loop.StaticBlocked
	StaticChunked = loop.StaticChunked
)

// ForStaticInit implements for_static_init: a compile-time-known static
// schedule's entire per-thread share, computed directly with no ring
// slot involved (unlike every other schedule, a static loop's
// distribution depends only on the thread count and the loop bounds, so
// there is nothing to claim or publish). base, end and incr describe the
// original loop exactly as the compiler sees it (for (i = base; i <=
// end; i += incr)); ok is false for a zero-trip loop, in which case the
// thread does not execute the body at all.
func ForStaticInit[T loop.Integer](gtid int, kind StaticKind, base, end, incr T, chunk int) (ok bool, lb, ub, stride T, last bool) {
	rt := runtime()
	return loop.StaticInit[T](kind, gtid, rt.NumThreads(), base, end, incr, chunk)
}

// ForStaticFini closes a static worksharing loop. Nothing to do: a
// static loop's distribution was computed once, up front, with no
// shared state left to release.
func ForStaticFini(gtid int) {}

// DispatchInit implements dispatch_init: resolves the requested schedule
// (an empty Kind means schedule(runtime) — use whatever SetSchedule most
// recently installed) against the team's size and claims or joins this
// dynamic instance's ring slot. Every thread that will call DispatchNext
// for this loop must call DispatchInit first, with the same base, end,
// incr and schedule.
func DispatchInit[T loop.Integer](gtid int, schedule env.Schedule, base, end, incr T) {
	team.DispatchInit[T](runtime(), gtid, schedule, base, end, incr)
}

// DispatchNext implements dispatch_next: hands the calling thread its
// next chunk of a loop DispatchInit opened, or reports ok=false once the
// loop has no more work for any thread to take (whether locally owned or
// stolen).
func DispatchNext[T loop.Integer](gtid int) (lb, ub, stride T, last, ok bool) {
	return team.DispatchNext[T](runtime(), gtid)
}
