// Package affinity pins worker goroutines to logical CPUs so that a team's
// thread N can be expected to stay resident on core N for the life of the
// process, the way the source runtime pins OS threads at team construction.
package affinity

// Pin binds the calling goroutine's OS thread to the logical CPU numbered
// id. The caller must have already called runtime.LockOSThread, since
// pinning an OS thread the scheduler can reassign to a different goroutine
// at any time would be pointless.
//
// On platforms without an affinity syscall, Pin is a documented no-op: LOMP
// still runs correctly, it just loses the cache-locality benefit.
func Pin(id int) error {
	return pin(id)
}
