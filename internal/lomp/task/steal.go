package task

import (
	"github.com/parallel-runtimes/lomp/internal/lomp/numa"
	"github.com/parallel-runtimes/lomp/internal/lomp/rng"
)

// Pools is whatever exposes the team's per-thread pools to a stealer:
// normally the thread team itself.
type Pools interface {
	Count() int
	PoolAt(id int) *Pool
}

// Policy picks a victim for thread me whose own pool just came up
// empty, and tries to steal from it.
type Policy interface {
	Steal(me int, pools Pools) *Descriptor
}

// RoundRobin walks every other thread's pool starting with the next
// higher id, wrapping around, stopping at the first successful steal.
type RoundRobin struct{}

func (RoundRobin) Steal(me int, pools Pools) *Descriptor {
	n := pools.Count()
	for i := 1; i < n; i++ {
		victim := (me + i) % n
		if t := pools.PoolAt(victim).Steal(); t != nil {
			return t
		}
	}
	return nil
}

// RandomUniform picks a single uniformly random victim (never itself)
// and tries once. Cheaper per attempt than RoundRobin at the cost of
// sometimes missing tasks that are there to be found.
type RandomUniform struct {
	gen *rng.MLFSR32
}

func NewRandomUniform(seed uint32) *RandomUniform {
	return &RandomUniform{gen: rng.New(seed)}
}

func (r *RandomUniform) Steal(me int, pools Pools) *Descriptor {
	n := pools.Count()
	if n < 2 {
		return nil
	}
	victim := (me + 1 + r.gen.Intn(n-1)) % n
	return pools.PoolAt(victim).Steal()
}

// NUMAAware prefers victims in the calling thread's own NUMA domain,
// trying every other thread there before spilling over to the next
// domain, round robin from the thief's own domain outward.
type NUMAAware struct {
	oracle numa.Oracle
}

func NewNUMAAware(oracle numa.Oracle) *NUMAAware {
	return &NUMAAware{oracle: oracle}
}

func (a *NUMAAware) Steal(me int, pools Pools) *Descriptor {
	domains := a.oracle.Domains()
	myDomain := a.oracle.DomainOf(me)
	for d := 0; d < domains; d++ {
		domain := (myDomain + d) % domains
		for _, victim := range a.oracle.CoresInDomain(domain) {
			if victim == me {
				continue
			}
			if t := pools.PoolAt(victim).Steal(); t != nil {
				return t
			}
		}
	}
	return nil
}
