package barrier

import (
	"sync/atomic"

	"github.com/parallel-runtimes/lomp/internal/lomp/fatal"
)

// Dissemination is a distributed barrier: there is no thread that
// centralizes arrivals, so it has no separate check-in/check-out phases
// and overrides FullBarrier directly. In round r, thread me signals the
// thread (me+2^r) mod n and waits to be signalled by (me-2^r) mod n;
// after ceil(log2(n)) rounds every thread has transitively heard from
// every other one. Flags are double-buffered by a 2-bit entry count
// (parity selects the buffer, the next bit the sense) so the barrier
// needs no reset between uses.
type Dissemination struct {
	n         int
	rounds    int
	flags     [2][][]atomic.Bool // flags[parity][thread][round]
	neighbour [][]int            // neighbour[thread][round]
	entry     []int32
}

func NewDissemination(n int) *Dissemination {
	rounds := 0
	for (1 << rounds) < n {
		rounds++
	}
	d := &Dissemination{n: n, rounds: rounds, entry: make([]int32, n)}
	for p := 0; p < 2; p++ {
		d.flags[p] = make([][]atomic.Bool, n)
		for t := range d.flags[p] {
			d.flags[p][t] = make([]atomic.Bool, rounds)
		}
	}
	d.neighbour = make([][]int, n)
	for me := 0; me < n; me++ {
		d.neighbour[me] = make([]int, rounds)
		for r := 0; r < rounds; r++ {
			d.neighbour[me][r] = (me + (1 << uint(r))) % n
		}
	}
	return d
}

func (d *Dissemination) FullBarrier(me int) {
	parity := d.entry[me] & 1
	sense := (d.entry[me] & 2) == 0
	spins := 0
	for r := 0; r < d.rounds; r++ {
		n := d.neighbour[me][r]
		d.flags[parity][n][r].Store(sense)
		for d.flags[parity][me][r].Load() != sense {
			backoff(&spins)
		}
	}
	d.entry[me]++
}

func (d *Dissemination) IsDistributed() bool { return true }
func (d *Dissemination) Name() string        { return "dissemination" }

func (d *Dissemination) CheckIn(int) bool {
	fatal.Abort(fatal.MisuseOfDistributedBarrier, "%s: checkIn called on a single-phase distributed barrier", d.Name())
	return false
}

func (d *Dissemination) WakeUp(int, *Invocation) {
	fatal.Abort(fatal.MisuseOfDistributedBarrier, "%s: wakeUp called on a single-phase distributed barrier", d.Name())
}

func (d *Dissemination) CheckOut(bool, int) *Invocation {
	fatal.Abort(fatal.MisuseOfDistributedBarrier, "%s: checkOut called on a single-phase distributed barrier", d.Name())
	return nil
}
