package lomp

import "sync/atomic"

// flushFence is a dummy word whose only purpose is to give Flush an
// atomic operation to hang a sequentially consistent fence on: Go's
// memory model does not expose a bare fence primitive the way C++'s
// atomic_thread_fence(memory_order_seq_cst) does, but every operation in
// sync/atomic is already specified as sequentially consistent, so an
// uncontended atomic add on a variable nothing else touches has the same
// "nothing may move across this point" effect for the calling goroutine.
var flushFence atomic.Uint64

// Flush implements the flush directive: LLVM, like the source runtime,
// never accepts anything weaker than a full fence for it, so Flush does
// not take a variable list.
func Flush() {
	flushFence.Add(1)
}
