package thread

import (
	"testing"

	"github.com/parallel-runtimes/lomp/internal/lomp/task"
)

func TestCurrentTaskRoundTrip(t *testing.T) {
	th := New(0, 1, 128, nil)
	if th.CurrentTask() != nil {
		t.Fatal("a new thread should start with no current task")
	}
	d := task.New(nil, 0, nil, nil, nil)
	th.SetCurrentTask(d)
	if th.CurrentTask() != d {
		t.Fatal("expected SetCurrentTask to stick")
	}
}

func TestTaskgroupRoundTrip(t *testing.T) {
	th := New(0, 1, 128, nil)
	if th.CurrentTaskgroup() != nil {
		t.Fatal("a new thread should start with no open taskgroup")
	}
	g := task.NewTaskgroup(nil)
	th.SetCurrentTaskgroup(g)
	if th.CurrentTaskgroup() != g {
		t.Fatal("expected SetCurrentTaskgroup to stick")
	}
}

func TestFetchAndIncrSingleCountIsSequential(t *testing.T) {
	th := New(0, 1, 128, nil)
	for want := uint64(0); want < 5; want++ {
		if got := th.FetchAndIncrSingleCount(); got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}

func TestNextRandomIsDeterministicPerSeed(t *testing.T) {
	a := New(0, 42, 128, nil)
	b := New(0, 42, 128, nil)
	for i := 0; i < 10; i++ {
		if a.NextRandom() != b.NextRandom() {
			t.Fatal("two threads with the same global id should draw the same sequence")
		}
	}
}
