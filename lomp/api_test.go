package lomp

import (
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/parallel-runtimes/lomp/internal/lomp/env"
)

// TestMain pins the team size before any test touches the package-level
// singleton: there is exactly one team for the life of the process, so
// every test in this binary shares it.
func TestMain(m *testing.M) {
	SetNumThreads(8)
	m.Run()
}

func TestForkRunsBodyOnEveryThread(t *testing.T) {
	n := GetMaxThreads()
	var seen [8]atomic.Bool
	Fork(func(gtid, ltid int, args []any) {
		seen[ltid].Store(true)
	}, nil)
	for i := 0; i < n; i++ {
		if !seen[i].Load() {
			t.Fatalf("thread %d never ran", i)
		}
	}
}

func TestForkRejectsNestingWithoutCrashingTheWholeSuite(t *testing.T) {
	// Nested Fork is a fatal, process-terminating error in this runtime
	// (matching the source's NestedParallel abort), so the only thing a
	// test can check without killing the binary is that InParallel
	// correctly reports true for the duration of the outer region —
	// the actual abort path is exercised only by inspection, not by a
	// test that would need to survive os.Exit.
	Fork(func(gtid, ltid int, args []any) {
		if gtid == 0 && !InParallel() {
			t.Error("InParallel should be true while Fork's body is running")
		}
	}, nil)
	if InParallel() {
		t.Error("InParallel should be false once Fork has returned")
	}
}

func TestBarrierSeesEveryThreadsWrite(t *testing.T) {
	n := GetMaxThreads()
	slots := make([]int32, n)
	Fork(func(gtid, ltid int, args []any) {
		slots[ltid] = int32(ltid)
		Barrier(ltid)
		for i := 0; i < n; i++ {
			if slots[i] != int32(i) {
				t.Errorf("thread %d saw slot %d = %d after the barrier", ltid, i, slots[i])
			}
		}
	}, nil)
}

func TestForStaticInitBlockedCoversEveryIteration(t *testing.T) {
	const end = int32(199)
	var mu sync.Mutex
	var got []int32
	Fork(func(gtid, ltid int, args []any) {
		ok, lb, ub, _, last := ForStaticInit[int32](ltid, StaticBlocked, 0, end, 1, 1)
		ForStaticFini(ltid)
		if !ok {
			return
		}
		mu.Lock()
		for i := lb; i <= ub; i++ {
			got = append(got, i)
		}
		if last && ub != end {
			t.Errorf("thread %d reported last but stopped at %d, not %d", ltid, ub, end)
		}
		mu.Unlock()
	}, nil)
	checkPermutation(t, got, int(end)+1)
}

// TestForStaticInitChunkedFirstChunkIsWellFormed exercises the cyclic
// case of the single-call static init directly, without reproducing the
// compiler-generated stride loop that steps through each thread's later
// chunks against the loop's own original bound (ForStaticInit's
// returned ub bounds only this thread's first chunk, as documented).
func TestForStaticInitChunkedFirstChunkIsWellFormed(t *testing.T) {
	const end = int32(199)
	const chunk = 3
	n := GetMaxThreads()
	Fork(func(gtid, ltid int, args []any) {
		ok, lb, ub, stride, last := ForStaticInit[int32](ltid, StaticChunked, 0, end, 1, chunk)
		ForStaticFini(ltid)
		if !ok {
			t.Fatalf("thread %d expected iterations with end=%d, got none", ltid, end)
		}
		if lb != int32(ltid*chunk) {
			t.Errorf("thread %d: lb = %d, want %d", ltid, lb, ltid*chunk)
		}
		if ub != lb+chunk-1 {
			t.Errorf("thread %d: ub = %d, want %d", ltid, ub, lb+chunk-1)
		}
		if want := int32(n * chunk); stride != want {
			t.Errorf("thread %d: stride = %d, want %d", ltid, stride, want)
		}
		wantLast := ltid == int(((int(end)+1+chunk-1)/chunk-1)%n) // (chunkCount-1) % numThreads, chunkCount = ceil((end+1)/chunk)
		if last != wantLast {
			t.Errorf("thread %d: last = %v, want %v", ltid, last, wantLast)
		}
	}, nil)
}

func TestDispatchNextCoversEveryIterationUnderDynamic(t *testing.T) {
	const end = int32(999)
	var mu sync.Mutex
	var got []int32
	Fork(func(gtid, ltid int, args []any) {
		DispatchInit[int32](ltid, env.Schedule{Kind: env.Dynamic, Chunk: 3}, 0, end, 1)
		for {
			lb, ub, _, _, ok := DispatchNext[int32](ltid)
			if !ok {
				return
			}
			mu.Lock()
			for i := lb; i <= ub; i++ {
				got = append(got, i)
			}
			mu.Unlock()
		}
	}, nil)
	checkPermutation(t, got, int(end)+1)
}

func TestDispatchNextCoversEveryIterationUnderNonmonotonicStealing(t *testing.T) {
	const end = int32(4001)
	var mu sync.Mutex
	var got []int32
	Fork(func(gtid, ltid int, args []any) {
		DispatchInit[int32](ltid, env.Schedule{Kind: env.Dynamic, Monotonicity: env.Nonmonotonic}, 0, end, 1)
		for {
			lb, ub, _, _, ok := DispatchNext[int32](ltid)
			if !ok {
				return
			}
			mu.Lock()
			for i := lb; i <= ub; i++ {
				got = append(got, i)
			}
			mu.Unlock()
		}
	}, nil)
	checkPermutation(t, got, int(end)+1)
}

// TestForStaticInitChunkedNonUnitStrideCoversEveryIteration exercises a
// loop that steps by more than 1 (i += 2, chunk 5): thread 0's first
// chunk must land on {0,2,4,6,8} with stride = numThreads*chunk*incr,
// and every thread's first chunk together must still cover the whole
// iteration set {0,2,...,18}. Threads whose first chunk lands beyond
// end (there are more threads than chunks here) contribute nothing, the
// same way a compiler-generated stride loop would skip them by checking
// lb against end before use.
func TestForStaticInitChunkedNonUnitStrideCoversEveryIteration(t *testing.T) {
	const base, end, incr = int32(0), int32(18), int32(2)
	const chunk = 5
	n := GetMaxThreads()
	var mu sync.Mutex
	var got []int32
	Fork(func(gtid, ltid int, args []any) {
		ok, lb, ub, stride, last := ForStaticInit[int32](ltid, StaticChunked, base, end, incr, chunk)
		ForStaticFini(ltid)
		if !ok {
			t.Fatalf("thread %d expected iterations with end=%d, got none", ltid, end)
		}
		if ltid == 0 {
			if lb != 0 || ub != 8 || stride != int32(n*chunk)*incr || last {
				t.Errorf("thread 0: lb=%d ub=%d stride=%d last=%v, want 0 8 %d false", lb, ub, stride, last, n*chunk*int(incr))
			}
		}
		if lb > end {
			return
		}
		mu.Lock()
		for i := lb; i <= ub; i += incr {
			got = append(got, i)
		}
		mu.Unlock()
	}, nil)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []int32{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func checkPermutation(t *testing.T, got []int32, n int) {
	t.Helper()
	if len(got) != n {
		t.Fatalf("expected %d total iterations, got %d", n, len(got))
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	for i := range got {
		if got[i] != int32(i) {
			t.Fatalf("expected a permutation of [0,%d), got %v", n, got)
		}
	}
}

func TestSingleExecutesExactlyOnce(t *testing.T) {
	var count atomic.Int32
	Fork(func(gtid, ltid int, args []any) {
		if Single(ltid) {
			count.Add(1)
		}
		EndSingle(ltid)
	}, nil)
	if count.Load() != 1 {
		t.Fatalf("expected exactly one thread to run the single region, got %d", count.Load())
	}
}

func TestMasterIsAlwaysThreadZero(t *testing.T) {
	Fork(func(gtid, ltid int, args []any) {
		if Master(ltid) != (ltid == 0) {
			t.Errorf("Master(%d) = %v, want %v", ltid, Master(ltid), ltid == 0)
		}
		EndMaster(ltid)
	}, nil)
}

func TestCriticalSerializesAcrossTheWholeTeam(t *testing.T) {
	n := GetMaxThreads()
	shared := 0
	Fork(func(gtid, ltid int, args []any) {
		for i := 0; i < 100; i++ {
			Critical("counter")
			shared++
			EndCritical("counter")
		}
	}, nil)
	if want := n * 100; shared != want {
		t.Fatalf("expected %d, got %d", want, shared)
	}
}

func TestReduceReturnsCriticalCodeWhenCompilerDisallowsAtomic(t *testing.T) {
	total := 0
	Fork(func(gtid, ltid int, args []any) {
		if code := Reduce(ltid, false); code == 1 {
			total += ltid
		}
		EndReduce(ltid)
	}, nil)
	n := GetMaxThreads()
	want := n * (n - 1) / 2
	if total != want {
		t.Fatalf("expected %d, got %d", want, total)
	}
}

func TestTaskWaitDrainsEveryChildTask(t *testing.T) {
	var completed atomic.Int32
	Fork(func(gtid, ltid int, args []any) {
		if ltid != 0 {
			return
		}
		for i := 0; i < 200; i++ {
			h := TaskAlloc(ltid, func(gtid int, args []any) {
				completed.Add(1)
			}, nil)
			Task(ltid, h)
		}
		TaskWait(ltid)
		if completed.Load() != 200 {
			t.Fatalf("expected 200 completed tasks before TaskWait returned, got %d", completed.Load())
		}
	}, nil)
}

func TestTaskgroupWaitsForDescendants(t *testing.T) {
	var completed atomic.Int32
	Fork(func(gtid, ltid int, args []any) {
		if ltid != 0 {
			return
		}
		TaskgroupBegin(ltid)
		for i := 0; i < 50; i++ {
			h := TaskAlloc(ltid, func(gtid int, args []any) {
				completed.Add(1)
			}, nil)
			Task(ltid, h)
		}
		TaskgroupEnd(ltid)
		if completed.Load() != 50 {
			t.Fatalf("expected 50 completed tasks before TaskgroupEnd returned, got %d", completed.Load())
		}
	}, nil)
}

func TestBeginCompleteIf0RunsInlineAndAccountsCorrectly(t *testing.T) {
	Fork(func(gtid, ltid int, args []any) {
		if ltid != 0 {
			return
		}
		ran := false
		h := TaskAlloc(ltid, func(gtid int, args []any) { ran = true }, nil)
		prev := BeginIf0(ltid, h)
		h.Body(ltid, h.Args)
		CompleteIf0(ltid, h, prev)
		if !ran {
			t.Fatal("if(0) task body never ran")
		}
		TaskWait(ltid) // must not hang: if0 accounting must not leave a dangling child
	}, nil)
}

func TestLockExcludesConcurrentHolders(t *testing.T) {
	l := InitLock()
	defer DestroyLock(l)
	var holders atomic.Int32
	var sawTwo atomic.Bool
	Fork(func(gtid, ltid int, args []any) {
		for i := 0; i < 50; i++ {
			SetLock(l)
			if holders.Add(1) > 1 {
				sawTwo.Store(true)
			}
			holders.Add(-1)
			UnsetLock(l)
		}
	}, nil)
	if sawTwo.Load() {
		t.Fatal("two threads held the lock simultaneously")
	}
}

func TestScheduleRoundTrips(t *testing.T) {
	want := Schedule{Kind: ScheduleGuided, Chunk: 5}
	SetSchedule(want)
	if got := GetSchedule(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestGetThreadNumAndNumThreadsOutsideParallel(t *testing.T) {
	if GetThreadNum(0) != 0 {
		t.Fatal("expected thread num 0 outside a parallel region")
	}
	if GetNumThreads() != 1 {
		t.Fatal("expected num threads 1 outside a parallel region")
	}
}

func TestFlushDoesNotPanic(t *testing.T) {
	Flush()
}

func TestGetWtimeIsMonotonicEnough(t *testing.T) {
	a := GetWtime()
	b := GetWtime()
	if b < a {
		t.Fatal("wall-clock time went backwards")
	}
}
