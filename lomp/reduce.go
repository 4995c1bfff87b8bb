package lomp

// Reduce implements the reduce entry point: it decides how this
// reduction will be carried out and returns the compiler-facing code
// that tells the caller what to do next — 1 means "you now hold the
// critical section named for this reduction, update normally, then call
// EndReduce"; 2 means "update the shared variable atomically yourself,
// no lock is held". compilerAllowsAtomic mirrors the ident flag the
// compiler sets when every reduction operator in this clause can be
// performed as a single atomic update.
func Reduce(gtid int, compilerAllowsAtomic bool) int {
	return runtime().EnterReduction(gtid, compilerAllowsAtomic)
}

// EndReduce completes a reduction begun with Reduce: releases the
// critical section if one was taken, then waits at a full barrier, since
// a plain (non-nowait) reduce clause implies the team rejoins before
// continuing.
func EndReduce(gtid int) {
	runtime().LeaveReduction(gtid, true)
}

// ReduceNowait is Reduce for a reduction clause with nowait: the entry
// decision is identical, only the exit differs.
func ReduceNowait(gtid int, compilerAllowsAtomic bool) int {
	return runtime().EnterReduction(gtid, compilerAllowsAtomic)
}

// EndReduceNowait completes a nowait reduction: releases the critical
// section if one was taken, without an accompanying barrier.
func EndReduceNowait(gtid int) {
	runtime().LeaveReduction(gtid, false)
}
