package team

import (
	"strings"
	"sync"

	"github.com/parallel-runtimes/lomp/internal/lomp/fatal"
	"github.com/parallel-runtimes/lomp/internal/lomp/thread"
)

var (
	forcedReductionOnce sync.Once
	forcedReduction      thread.ReductionKind
)

// forcedKind resolves LOMP_REDUCTION_STYLE once per process: "atomic",
// "critical", "tree", or unset/"none" to let each reduction choose for
// itself.
func forcedKind(style string) thread.ReductionKind {
	forcedReductionOnce.Do(func() {
		switch strings.ToLower(strings.TrimSpace(style)) {
		case "atomic":
			forcedReduction = thread.AtomicReduction
		case "critical":
			forcedReduction = thread.CriticalSectionReduction
		case "tree":
			forcedReduction = thread.TreeReduction
		default:
			forcedReduction = thread.UnknownReduction
		}
	})
	return forcedReduction
}

// compilerAllowsAtomic mirrors the original's check of the call site's
// ident flags for KMP_IDENT_ATOMIC_REDUCE: whether the compiler emitted
// code that can safely perform this particular reduction with a single
// atomic update instead of a critical section.
func (t *Team) chooseReduction(compilerAllowsAtomic bool) thread.ReductionKind {
	switch kind := forcedKind(t.icvs.ReductionStyle); kind {
	case thread.AtomicReduction:
		if compilerAllowsAtomic {
			return kind
		}
		fatal.Warn("team:reduction-atomic", "forced atomic reduction is not supported by this call site, using critical section")
		return thread.CriticalSectionReduction
	case thread.CriticalSectionReduction:
		return kind
	case thread.TreeReduction:
		fatal.Abort(fatal.UnsupportedChange, "tree reduction is not implemented")
	case thread.UnknownReduction:
		// fall through to the unforced default below
	default:
		fatal.Warn("team:reduction", "unsupported forced reduction kind %v, using critical section", kind)
		return thread.CriticalSectionReduction
	}
	if compilerAllowsAtomic {
		return thread.AtomicReduction
	}
	return thread.CriticalSectionReduction
}

// EnterReduction implements the runtime half of #pragma omp reduction: it
// decides how this reduction will be performed and, for the
// critical-section style, acquires the lock the matching LeaveReduction
// call will release. The returned code mirrors the compiler-facing ABI's
// convention: 1 means "you hold the critical section, update normally
// and call LeaveReduction", 2 means "update atomically, no lock is held".
func (t *Team) EnterReduction(me int, compilerAllowsAtomic bool) int {
	th := t.threads[me]
	kind := t.chooseReduction(compilerAllowsAtomic)
	th.CurrentReduction = kind
	if kind == thread.CriticalSectionReduction {
		t.reductionLock.Set()
		return 1
	}
	return 2
}

// LeaveReduction completes a reduction started with EnterReduction,
// releasing the critical section if one was taken, and optionally
// waiting at a full barrier afterward (end reduce, as opposed to the
// barrier-free #pragma omp reduction clause).
func (t *Team) LeaveReduction(me int, withBarrier bool) {
	th := t.threads[me]
	if th.CurrentReduction == thread.CriticalSectionReduction {
		t.reductionLock.Unset()
	}
	th.CurrentReduction = thread.UnknownReduction
	if withBarrier {
		t.FullBarrier(me)
	}
}
