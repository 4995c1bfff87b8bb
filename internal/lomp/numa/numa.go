// Package numa provides the opaque topology oracle the task stealer
// consults to prefer victims on the same NUMA domain. Real topology
// discovery is out of scope for this runtime (spec §1 treats it as an
// external collaborator); this package exposes a small interface with a
// flat (single-domain) implementation that is always correct, and a
// grouped implementation used when the caller knows how cores are banked.
package numa

import "sync"

// Oracle answers the questions the task stealer needs about CPU topology.
type Oracle interface {
	// Domains returns the number of NUMA domains.
	Domains() int
	// DomainOf returns the NUMA domain containing logical thread id.
	DomainOf(id int) int
	// CoresInDomain lists the logical thread ids belonging to domain d,
	// in ascending order.
	CoresInDomain(d int) []int
	// Register records that logical thread id is currently running on the
	// calling goroutine, so RunningThread can answer "who runs on core c".
	Register(id int)
	// RunningThread returns the thread id registered for core id, if any.
	RunningThread(id int) (int, bool)
}

// Flat treats every thread as belonging to a single NUMA domain. It is the
// always-safe default when nothing more specific is known.
type Flat struct {
	n int

	mu      sync.Mutex
	running map[int]int
}

// NewFlat creates a Flat oracle over n logical threads.
func NewFlat(n int) *Flat {
	return &Flat{n: n, running: make(map[int]int, n)}
}

func (f *Flat) Domains() int { return 1 }

func (f *Flat) DomainOf(int) int { return 0 }

func (f *Flat) CoresInDomain(int) []int {
	ids := make([]int, f.n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (f *Flat) Register(id int) {
	f.mu.Lock()
	f.running[id] = id
	f.mu.Unlock()
}

func (f *Flat) RunningThread(id int) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.running[id]
	return v, ok
}

// Grouped partitions threads into equally sized domains, in blocks of
// coresPerDomain consecutive thread ids. This is the shape real NUMA
// topology takes on most machines (a contiguous block of cores per socket)
// without requiring this package to actually parse /sys/devices/system/node.
type Grouped struct {
	n             int
	coresPerGroup int

	mu      sync.Mutex
	running map[int]int
}

// NewGrouped creates a Grouped oracle over n logical threads with
// coresPerGroup threads per domain. coresPerGroup <= 0 collapses to Flat
// behaviour (one domain).
func NewGrouped(n, coresPerGroup int) *Grouped {
	if coresPerGroup <= 0 {
		coresPerGroup = n
	}
	return &Grouped{n: n, coresPerGroup: coresPerGroup, running: make(map[int]int, n)}
}

func (g *Grouped) Domains() int {
	if g.coresPerGroup == 0 {
		return 1
	}
	return (g.n + g.coresPerGroup - 1) / g.coresPerGroup
}

func (g *Grouped) DomainOf(id int) int {
	return id / g.coresPerGroup
}

func (g *Grouped) CoresInDomain(d int) []int {
	start := d * g.coresPerGroup
	end := start + g.coresPerGroup
	if end > g.n {
		end = g.n
	}
	if start >= end {
		return nil
	}
	ids := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		ids = append(ids, i)
	}
	return ids
}

func (g *Grouped) Register(id int) {
	g.mu.Lock()
	g.running[id] = id
	g.mu.Unlock()
}

func (g *Grouped) RunningThread(id int) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.running[id]
	return v, ok
}
