//go:build !linux

package affinity

// pin is a no-op on platforms lacking a portable affinity syscall exposed
// through golang.org/x/sys/unix. Callers treat a non-nil error as advisory,
// never fatal, per spec ("where the platform permits").
func pin(_ int) error {
	return nil
}
