package loop

// StaticInit implements the compiler's direct, single-call static
// schedule entry point: unlike DispatchInit/Dispatch (used for every
// schedule resolved at runtime, including schedule(runtime) and
// schedule(static) reached that way), a compile-time-known static
// schedule never goes through the loop ring at all. One call hands the
// calling thread its whole share; for StaticChunked the returned stride
// lets the compiler-generated loop step through every one of this
// thread's cyclic chunks on its own, by repeatedly adding stride to lb
// and comparing against the loop's own original upper bound — ub here
// only bounds the thread's first chunk, exactly as the source runtime
// returns it.
func StaticInit[T Integer](kind Kind, me, numThreads int, base, end, incr T, chunk int) (ok bool, lb, ub, stride T, last bool) {
	var c Canonical[T]
	c.Init(base, end, incr, chunk)
	count := c.Count()
	if count == 0 || end < base {
		return false, 0, 0, c.incr, false
	}

	if kind == StaticChunked {
		lb = c.ChunkLower(uint64(me))
		ub = lb + T(c.chunkLen-1)*c.incr
		stride = T(numThreads) * c.scale
		last = me == int((count-1)%uint64(numThreads))
		return true, lb, ub, stride, last
	}

	whole := count / uint64(numThreads)
	leftover := count % uint64(numThreads)
	var myBase, extras uint64
	if uint64(me) < leftover {
		myBase = uint64(me) * (whole + 1)
		extras = 1
	} else {
		myBase = uint64(me)*whole + leftover
	}
	if count < uint64(numThreads) {
		last = uint64(me) == count-1
	} else {
		last = me == numThreads-1
	}
	lb = c.ChunkLower(myBase)
	ub = c.ChunkUpper(myBase+whole-1) + T(extras)*c.incr
	stride = T(count) * c.incr
	return count > uint64(me), lb, ub, stride, last
}
