package loop

import "sync"

// ContiguousWork is one thread's slice of a "static steal" loop: a
// contiguous half-open range [base, end) of chunk-indices, shrunk from
// the front as the owner consumes it and from whichever end a thief
// takes from. The original updates base/end together with a single
// wide CAS on a packed pair; Go has no portable double-word atomic, so
// this guards the pair with an ordinary mutex instead — contended only
// while a steal is actually in flight, which balanced initial
// distribution makes rare.
type ContiguousWork struct {
	mu    sync.Mutex
	base  uint64
	end   uint64
	stealing bool
	started  uint64
}

// InitializeBalanced splits count chunk-indices as evenly as possible
// across numThreads, giving thread me its contiguous share.
func (w *ContiguousWork) InitializeBalanced(count uint64, me, numThreads uint32) {
	whole := count / uint64(numThreads)
	leftover := count % uint64(numThreads)
	var b, e uint64
	if uint64(me) < leftover {
		b = uint64(me) * (whole + 1)
		e = b + whole + 1
	} else {
		b = uint64(me)*whole + leftover
		e = b + whole
	}
	w.assign(b, e)
}

// InitializeImbalanced gives all count chunk-indices to thread 0 and
// nothing to everyone else, for the debug "imbalanced" schedule.
func (w *ContiguousWork) InitializeImbalanced(count uint64, me uint32) {
	if me == 0 {
		w.assign(0, count)
	} else {
		w.assign(0, 0)
	}
}

func (w *ContiguousWork) assign(b, e uint64) {
	w.mu.Lock()
	w.base, w.end = b, e
	w.mu.Unlock()
}

// ZeroStarted resets the count of iterations this thread has begun.
func (w *ContiguousWork) ZeroStarted() {
	w.mu.Lock()
	w.started = 0
	w.mu.Unlock()
}

// IncrementBase claims the next chunk-index from the front of this
// thread's own range, reporting whether one was available.
func (w *ContiguousWork) IncrementBase() (next uint64, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.base >= w.end {
		return 0, false
	}
	next = w.base
	w.base++
	w.started++
	return next, true
}

// TrySteal takes roughly half of the remaining range from the back
// (the end a busy owner is least likely to be touching right now),
// reporting the stolen [base, end) and whether there was anything to
// take.
func (w *ContiguousWork) TrySteal() (base, end uint64, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stealing || w.base >= w.end {
		return 0, 0, false
	}
	remaining := w.end - w.base
	half := (remaining + 1) / 2
	if half == 0 {
		return 0, 0, false
	}
	base = w.end - half
	end = w.end
	w.end = base
	return base, end, true
}

// Assign installs a freshly stolen [base, end) as this thread's own
// range, making it available to IncrementBase (and, in turn, to be
// stolen from again).
func (w *ContiguousWork) Assign(base, end uint64) { w.assign(base, end) }

func (w *ContiguousWork) Started() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

func (w *ContiguousWork) SetStealing(v bool) {
	w.mu.Lock()
	w.stealing = v
	w.mu.Unlock()
}
