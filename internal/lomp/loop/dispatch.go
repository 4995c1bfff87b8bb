package loop

// Dispatch hands the calling thread (me, of threadCount) its next chunk
// of iterations, the same way the compiler-facing ABI's
// __kmpc_dispatch_next does: ok is false once the loop is exhausted for
// this thread. nextChunk is the thread's own persisted cursor, used (and
// required) only by StaticBlocked and StaticChunked; randNext supplies
// random victim choices for NonmonotonicDynamic/Imbalanced and may be
// nil for every other kind.
func (d *Descriptor[T]) Dispatch(me, threadCount int, nextChunk *uint64, randNext func() uint32) (lb, ub, stride T, last, ok bool) {
	switch d.Kind {
	case StaticBlocked:
		return d.dispatchStaticBlocked(me, threadCount, nextChunk)
	case StaticChunked:
		return d.dispatchStaticChunked(me, threadCount, nextChunk)
	case Guided:
		return d.dispatchGuided(threadCount)
	case MonotonicDynamic:
		return d.dispatchMonotonicDynamic()
	case NonmonotonicDynamic, Imbalanced:
		return d.dispatchNonmonotonicDynamic(me, threadCount, randNext)
	default:
		return 0, 0, 0, false, false
	}
}

func (d *Descriptor[T]) dispatchStaticBlocked(me, threadCount int, nextChunk *uint64) (lb, ub, stride T, last, ok bool) {
	if *nextChunk != 0 {
		return 0, 0, 0, false, false
	}
	*nextChunk = 1

	count := d.canonical.Count()
	whole := count / uint64(threadCount)
	leftover := count % uint64(threadCount)

	var myBase, extras uint64
	if uint64(me) < leftover {
		myBase = uint64(me) * (whole + 1)
		extras = 1
	} else {
		myBase = uint64(me)*whole + leftover
		extras = 0
	}
	if count < uint64(threadCount) {
		last = uint64(me) == count-1
	} else {
		last = me == threadCount-1
	}
	lb = d.canonical.ChunkLower(myBase)
	ub = d.canonical.ChunkUpper(myBase+whole-1) + T(extras)*d.canonical.incr
	stride = T(count) * d.canonical.incr
	ok = count > uint64(me)
	return
}

func (d *Descriptor[T]) dispatchStaticChunked(me, threadCount int, nextChunk *uint64) (lb, ub, stride T, last, ok bool) {
	myChunk := *nextChunk
	count := d.canonical.Count()
	if myChunk >= count {
		return 0, 0, 0, false, false
	}
	lb = d.canonical.ChunkLower(myChunk)
	ub = d.canonical.ChunkUpper(myChunk)
	stride = T(threadCount) * d.canonical.Stride(myChunk, myChunk+uint64(threadCount))
	last = d.canonical.IsLastChunk(myChunk)
	*nextChunk = myChunk + uint64(threadCount)
	return lb, ub, stride, last, true
}

func (d *Descriptor[T]) dispatchGuided(threadCount int) (lb, ub, stride T, last, ok bool) {
	count := d.canonical.Count()
	for {
		local := d.nextIteration.Load()
		remaining := count - local
		if remaining == 0 {
			return 0, 0, 0, false, false
		}
		myShare := (remaining + uint64(threadCount) - 1) / uint64(threadCount)
		delta := (myShare + 1) / 2
		if delta == 0 {
			delta = 1
		}
		if d.nextIteration.CompareAndSwap(local, local+delta) {
			lastIter := local + delta - 1
			lb = d.canonical.ChunkLower(local)
			ub = d.canonical.ChunkUpper(lastIter)
			stride = d.canonical.Stride(local, lastIter)
			last = d.canonical.IsLastChunk(lastIter)
			return lb, ub, stride, last, true
		}
	}
}

func (d *Descriptor[T]) dispatchMonotonicDynamic() (lb, ub, stride T, last, ok bool) {
	count := d.canonical.Count()
	for {
		local := d.nextIteration.Load()
		if local == count {
			return 0, 0, 0, false, false
		}
		if d.nextIteration.CompareAndSwap(local, local+1) {
			lb = d.canonical.ChunkLower(local)
			ub = d.canonical.ChunkUpper(local)
			stride = d.canonical.Stride(local, local)
			last = d.canonical.IsLastChunk(local)
			return lb, ub, stride, last, true
		}
	}
}

func (d *Descriptor[T]) dispatchNonmonotonicDynamic(me, threadCount int, randNext func() uint32) (lb, ub, stride T, last, ok bool) {
	emit := func(iteration uint64) (T, T, T, bool, bool) {
		return d.canonical.ChunkLower(iteration), d.canonical.ChunkUpper(iteration),
			d.canonical.Stride(iteration, iteration), d.canonical.IsLastChunk(iteration), true
	}

	mine := &d.work[me]
	if next, got := mine.IncrementBase(); got {
		return emit(next)
	}
	if d.finished.Load() {
		return 0, 0, 0, false, false
	}

	var victim int
	if threadCount > 1 {
		for {
			victim = int(randNext()) % threadCount
			if victim != me {
				break
			}
		}
	}

	mine.SetStealing(true)
	defer mine.SetStealing(false)

	for !d.finished.Load() {
		stoleAny := false
		for i := 0; i < threadCount; i++ {
			v := (victim + i) % threadCount
			if v == me {
				continue
			}
			if base, end, got := d.work[v].TrySteal(); got {
				mine.Assign(base, end)
				stoleAny = true
				if next, got := mine.IncrementBase(); got {
					return emit(next)
				}
			}
		}
		if !stoleAny {
			d.finished.Store(true)
		}
	}
	return 0, 0, 0, false, false
}
