package team

import (
	"sync/atomic"
	"testing"

	"github.com/parallel-runtimes/lomp/internal/lomp/env"
)

func newTestTeam(t *testing.T, n int) *Team {
	t.Helper()
	tm := New(n, env.ICVs{BarrierKind: "flag-naive", StealPolicy: env.RoundRobin})
	for i := 1; i < n; i++ {
		go tm.Worker(i)
	}
	return tm
}

func TestForkRunsOnEveryThread(t *testing.T) {
	const n = 6
	tm := newTestTeam(t, n)

	var seen [n]atomic.Bool
	for round := 0; round < 20; round++ {
		for i := range seen {
			seen[i].Store(false)
		}
		tm.Fork(func(gtid, ltid int, args []any) {
			seen[ltid].Store(true)
		}, nil)
		for i := range seen {
			if !seen[i].Load() {
				t.Fatalf("round %d: thread %d never ran", round, i)
			}
		}
	}
}

func TestStoreTaskAndTaskWaitDrainsChildren(t *testing.T) {
	tm := newTestTeam(t, 4)

	var ran atomic.Int32
	tm.Fork(func(gtid, ltid int, args []any) {
		if ltid != 0 {
			return
		}
		for i := 0; i < 50; i++ {
			d := tm.NewTask(ltid, func(gtid int, args []any) {
				ran.Add(1)
			}, nil)
			tm.StoreTask(ltid, d)
		}
		tm.TaskWait(ltid)
		if got := ran.Load(); got != 50 {
			t.Fatalf("expected all 50 tasks to finish before TaskWait returned, got %d", got)
		}
	}, nil)
}

func TestTaskgroupWaitsForDescendants(t *testing.T) {
	tm := newTestTeam(t, 4)

	var ran atomic.Int32
	tm.Fork(func(gtid, ltid int, args []any) {
		if ltid != 0 {
			return
		}
		tm.TaskgroupBegin(ltid)
		for i := 0; i < 10; i++ {
			d := tm.NewTask(ltid, func(gtid int, args []any) {
				ran.Add(1)
			}, nil)
			tm.StoreTask(ltid, d)
		}
		tm.TaskgroupEnd(ltid)
		if got := ran.Load(); got != 10 {
			t.Fatalf("expected taskgroup end to wait for all descendants, got %d", got)
		}
	}, nil)
}

func TestCriticalSerializes(t *testing.T) {
	tm := newTestTeam(t, 8)

	counter := 0
	tm.Fork(func(gtid, ltid int, args []any) {
		for i := 0; i < 200; i++ {
			tm.Critical("")
			counter++
			tm.EndCritical("")
		}
	}, nil)

	if counter != 8*200 {
		t.Fatalf("expected critical sections to serialize all increments, got %d", counter)
	}
}

func TestReductionEnterLeaveCritical(t *testing.T) {
	tm := newTestTeam(t, 8)

	sum := 0
	tm.Fork(func(gtid, ltid int, args []any) {
		code := tm.EnterReduction(ltid, false)
		if code != 1 {
			t.Errorf("expected critical-section reduction code 1, got %d", code)
		}
		sum += ltid
		tm.LeaveReduction(ltid, false)
	}, nil)

	want := 0
	for i := 0; i < 8; i++ {
		want += i
	}
	if sum != want {
		t.Fatalf("expected sum %d, got %d", want, sum)
	}
}

func TestReductionAtomicCodeWhenCompilerAllows(t *testing.T) {
	tm := newTestTeam(t, 2)

	tm.Fork(func(gtid, ltid int, args []any) {
		code := tm.EnterReduction(ltid, true)
		if code != 2 {
			t.Errorf("expected atomic reduction code 2, got %d", code)
		}
		tm.LeaveReduction(ltid, false)
	}, nil)
}
