package lomp

import (
	"sync"

	"github.com/parallel-runtimes/lomp/internal/lomp/env"
	"github.com/parallel-runtimes/lomp/internal/lomp/fatal"
	"github.com/parallel-runtimes/lomp/internal/lomp/team"
)

// runtimeMu guards the lazily-built singleton team and the thread-count
// override an early SetNumThreads call stages before construction.
var (
	runtimeMu        sync.Mutex
	theTeam          *team.Team
	teamBuilt        bool
	requestedThreads int
)

// runtime lazily builds the process's one thread team on first use,
// resolving environment ICVs and spawning every worker but thread 0
// (thread 0 is whichever goroutine calls Fork). Once built, the team is
// never rebuilt: there is no nested parallelism and no team resizing.
func runtime() *team.Team {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	if !teamBuilt {
		icvs := env.Resolve()
		if requestedThreads > 0 {
			icvs.NumThreads = requestedThreads
		}
		theTeam = team.New(icvs.NumThreads, icvs)
		for i := 1; i < icvs.NumThreads; i++ {
			go theTeam.Worker(i)
		}
		teamBuilt = true
	}
	return theTeam
}

// Fork implements the parallel-region entry point: it runs body on every
// thread of the team (thread 0 is the calling goroutine) and returns once
// every thread has finished and checked in. args is delivered unchanged
// to every invocation; gtid and ltid coincide in this runtime (there is
// only ever one team, so the global and team-local thread ids are the
// same number).
func Fork(body func(gtid, ltid int, args []any), args []any) {
	runtime().Fork(body, args)
}

// Barrier implements #pragma omp barrier: every thread must call it with
// its own gtid before any of them proceeds past this point.
func Barrier(gtid int) {
	runtime().FullBarrier(gtid)
}

// InParallel reports whether a parallel region is currently active.
func InParallel() bool {
	return runtime().InParallel()
}

// GetThreadNum returns the calling thread's team-relative rank while
// inside a parallel region, or 0 outside one (the implicit single-thread
// "team" that always exists).
func GetThreadNum(gtid int) int {
	if InParallel() {
		return gtid
	}
	return 0
}

// GetNumThreads returns the active team's size while inside a parallel
// region, or 1 outside one.
func GetNumThreads() int {
	if InParallel() {
		return runtime().NumThreads()
	}
	return 1
}

// GetMaxThreads returns the size the next parallel region will use.
func GetMaxThreads() int {
	return runtime().NumThreads()
}

// SetNumThreads overrides OMP_NUM_THREADS for the team about to be built.
// It is only effective before the first entry point that triggers
// construction (Fork, or any ICV inquiry); calling it afterward is a
// programming error, matching the source runtime's refusal to resize a
// team once workers exist.
func SetNumThreads(n int) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	if teamBuilt {
		fatal.Abort(fatal.UnsupportedChange, "SetNumThreads called after the team was already built with %d threads", theTeam.NumThreads())
	}
	requestedThreads = n
}
