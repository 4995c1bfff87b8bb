// Package lomp is the compiler-facing entry-point surface: the set of
// functions an OpenMP-style parallel-region lowering emits calls into.
// Everything underneath internal/lomp is wired up behind a single,
// lazily-built runtime instance the first time any entry point runs, the
// same way the source runtime defers its own construction to the first
// __kmpc_* call rather than requiring an explicit init step.
//
// Every entry point here takes the calling thread's local id (gtid in the
// ABI table) as an explicit parameter instead of consulting a
// thread-local self-pointer: Go has no goroutine-local storage, and the
// caller (compiler-outlined code, or the closure Fork hands to each
// thread) already has gtid in hand at every call site.
package lomp
