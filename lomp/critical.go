package lomp

// Critical implements #pragma omp critical(name): acquire the named
// critical section, blocking until it is free. The compiler statically
// allocates one lock per name (the empty name is itself a valid,
// unnamed section) rather than passing a lock value at the call site, so
// the name is the whole address here.
func Critical(name string) {
	runtime().Critical(name)
}

// EndCritical releases the critical section acquired by Critical.
func EndCritical(name string) {
	runtime().EndCritical(name)
}
