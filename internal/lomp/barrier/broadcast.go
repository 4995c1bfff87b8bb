package barrier

import (
	"sync/atomic"

	"github.com/parallel-runtimes/lomp/internal/lomp/cache"
)

// Broadcast is the release side of a centralized barrier: the root calls
// WakeUp once, and every other thread unblocks from Wait carrying
// whatever invocation (if any) the root supplied.
type Broadcast interface {
	WakeUp(me int, inv *Invocation)
	Wait(me int) *Invocation
	Name() string
}

// NaiveBroadcast has every waiter poll one shared flag. Each thread keeps
// its own expected-next-value, sense-reversing style, so a waiter never
// has to sample a baseline: it already knows, from the last time it
// passed through here, which value means "released".
type NaiveBroadcast struct {
	_       cache.Pad
	flag    atomic.Uint32
	payload atomic.Pointer[Invocation]
	_       cache.Pad
	next    []uint32
}

func NewNaiveBroadcast(n int) *NaiveBroadcast {
	b := &NaiveBroadcast{next: make([]uint32, n)}
	b.flag.Store(^uint32(0))
	return b
}

func (b *NaiveBroadcast) WakeUp(me int, inv *Invocation) {
	b.payload.Store(inv)
	v := b.next[me]
	b.flag.Store(v)
	b.next[me] = ^v
}

func (b *NaiveBroadcast) Wait(me int) *Invocation {
	want := b.next[me]
	spins := 0
	for b.flag.Load() != want {
		backoff(&spins)
	}
	b.next[me] = ^want
	return b.payload.Load()
}

func (b *NaiveBroadcast) Name() string { return "naive" }

type flagLine struct {
	flag atomic.Uint32
	_    cache.Pad
}

// LBWBroadcast ("Limited Bandwidth") groups `fanout` threads per release
// flag, trading the single shared cache line of NaiveBroadcast for
// several lines each polled by fewer threads.
type LBWBroadcast struct {
	fanout  int
	lines   []flagLine
	payload atomic.Pointer[Invocation]
	next    []uint32
}

func NewLBWBroadcast(n, fanout int) *LBWBroadcast {
	groups := (n + fanout - 1) / fanout
	b := &LBWBroadcast{fanout: fanout, lines: make([]flagLine, groups)}
	if fanout != 1 {
		b.next = make([]uint32, n)
		for i := range b.next {
			b.next[i] = ^uint32(0)
		}
	}
	return b
}

func (b *LBWBroadcast) nextValue() uint32 {
	if b.fanout == 1 {
		return ^uint32(0)
	}
	return b.next[0]
}

func (b *LBWBroadcast) WakeUp(me int, inv *Invocation) {
	v := b.nextValue()
	b.payload.Store(inv)
	for g := range b.lines {
		b.lines[g].flag.Store(v)
	}
	if b.fanout != 1 {
		b.next[me] = ^v
	}
}

func (b *LBWBroadcast) Wait(me int) *Invocation {
	var expected uint32
	if b.fanout == 1 {
		expected = ^uint32(0)
	} else {
		expected = b.next[me]
	}
	line := &b.lines[me/b.fanout]
	spins := 0
	for line.flag.Load() != expected {
		backoff(&spins)
	}
	if b.fanout == 1 {
		line.flag.Store(0)
	} else {
		b.next[me] = ^expected
	}
	return b.payload.Load()
}

func (b *LBWBroadcast) Name() string { return "lbw" }
