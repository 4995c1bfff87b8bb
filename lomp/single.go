package lomp

// Single implements the single construct: exactly one thread among those
// that reach a given dynamic instance gets true back and runs the guarded
// body; every other thread skips it. Each thread's own singles-seen
// counter picks out which dynamic instance it means, so nesting one
// single inside a loop works without any extra bookkeeping.
func Single(gtid int) bool {
	rt := runtime()
	th := rt.Thread(gtid)
	ordinal := th.FetchAndIncrSingleCount()
	return rt.TryIncrementNextSingle(ordinal)
}

// EndSingle closes a single construct. There is nothing to do: whether a
// barrier follows is a separate, explicit Barrier call the compiler emits
// unless the construct carried a nowait clause.
func EndSingle(gtid int) {}

// Master reports whether gtid is thread 0, the only thread that executes
// a master construct's body.
func Master(gtid int) bool {
	return GetThreadNum(gtid) == 0
}

// EndMaster closes a master construct. Master never blocks, so there is
// nothing to release here either.
func EndMaster(gtid int) {}
