package team

// Critical implements #pragma omp critical(name): acquire the lock for
// the named critical section, creating it on first use. The empty name
// is itself a valid section name, used for an unnamed critical.
func (t *Team) Critical(name string) {
	t.criticalLocks.Get(name).Set()
}

// EndCritical releases the named critical section acquired by Critical.
func (t *Team) EndCritical(name string) {
	t.criticalLocks.Get(name).Unset()
}
