package task

import (
	"sync"
	"testing"

	"github.com/parallel-runtimes/lomp/internal/lomp/numa"
)

func TestPoolPutGetIsLIFO(t *testing.T) {
	p := NewPool(4)
	a := New(nil, 0, nil, nil, nil)
	b := New(nil, 0, nil, nil, nil)
	if !p.Put(a) || !p.Put(b) {
		t.Fatal("expected room in an empty pool")
	}
	if got := p.Get(); got != b {
		t.Fatal("expected LIFO order: last put, first get")
	}
	if got := p.Get(); got != a {
		t.Fatal("expected the first task after the second is drained")
	}
	if got := p.Get(); got != nil {
		t.Fatal("expected nil from an empty pool")
	}
}

func TestPoolStealIsFIFO(t *testing.T) {
	p := NewPool(4)
	a := New(nil, 0, nil, nil, nil)
	b := New(nil, 0, nil, nil, nil)
	p.Put(a)
	p.Put(b)
	if got := p.Steal(); got != a {
		t.Fatal("expected FIFO order: first put, first stolen")
	}
	if got := p.Steal(); got != b {
		t.Fatal("expected the remaining task after the first is stolen")
	}
}

func TestPoolRejectsOverCapacity(t *testing.T) {
	p := NewPool(1)
	if !p.Put(New(nil, 0, nil, nil, nil)) {
		t.Fatal("first put should succeed")
	}
	if p.Put(New(nil, 0, nil, nil, nil)) {
		t.Fatal("second put should be rejected at capacity 1")
	}
}

type fixedPools struct{ pools []*Pool }

func (f fixedPools) Count() int          { return len(f.pools) }
func (f fixedPools) PoolAt(i int) *Pool { return f.pools[i] }

func TestRoundRobinFindsTaskInAnyOtherPool(t *testing.T) {
	pools := fixedPools{pools: []*Pool{NewPool(4), NewPool(4), NewPool(4)}}
	victim := New(nil, 2, nil, nil, nil)
	pools.pools[2].Put(victim)

	if got := (RoundRobin{}).Steal(0, pools); got != victim {
		t.Fatal("expected round robin to find the only queued task")
	}
}

func TestRoundRobinNeverStealsFromOwnPool(t *testing.T) {
	pools := fixedPools{pools: []*Pool{NewPool(4), NewPool(4)}}
	own := New(nil, 0, nil, nil, nil)
	pools.pools[0].Put(own)

	if got := (RoundRobin{}).Steal(0, pools); got != nil {
		t.Fatal("thread 0 should never steal from its own pool")
	}
}

func TestNUMAAwarePrefersOwnDomain(t *testing.T) {
	oracle := numa.NewGrouped(4, 2) // domains: {0,1}, {2,3}
	pools := fixedPools{pools: []*Pool{NewPool(4), NewPool(4), NewPool(4), NewPool(4)}}
	near := New(nil, 1, nil, nil, nil)
	far := New(nil, 2, nil, nil, nil)
	pools.pools[1].Put(near)
	pools.pools[2].Put(far)

	policy := NewNUMAAware(oracle)
	if got := policy.Steal(0, pools); got != near {
		t.Fatal("expected the same-domain task to be found before the cross-domain one")
	}
}

func TestChildTaskAccountingReachesZero(t *testing.T) {
	var childTasks int32
	var wg sync.WaitGroup
	parent := New(nil, 0, nil, nil, nil)

	const n = 20
	wg.Add(n)
	for i := 0; i < n; i++ {
		parent.ChildTasks.Add(1)
		childTasks++
		go func() {
			defer wg.Done()
			parent.ChildTasks.Add(-1)
		}()
	}
	wg.Wait()

	if parent.ChildTasks.Load() != 0 {
		t.Fatalf("expected all child tasks accounted for, got %d outstanding", parent.ChildTasks.Load())
	}
	if childTasks != n {
		t.Fatalf("expected %d creations recorded, got %d", n, childTasks)
	}
}
