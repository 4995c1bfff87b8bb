package lomp

import "github.com/parallel-runtimes/lomp/internal/lomp/lock"

// Lock is an opaque handle to one standard mutual-exclusion lock,
// returned by InitLock and consumed by every other lock entry point.
type Lock = lock.Lock

// LockHint names the acquisition-strategy hint InitLockWithHint accepts.
type LockHint = lock.HintKind

const (
	HintNone         = lock.HintNone
	HintContended    = lock.HintContended
	HintUncontended  = lock.HintUncontended
	HintSpeculative  = lock.HintSpeculative
)

// InitLock creates an unlocked Lock with no acquisition hint.
func InitLock() *Lock {
	return lock.New(HintNone)
}

// InitLockWithHint creates an unlocked Lock, honoring hint as far as the
// standard lock implementation can (informational only: it never changes
// the lock's external semantics).
func InitLockWithHint(hint LockHint) *Lock {
	return lock.New(hint)
}

// DestroyLock releases any resources held by l. A no-op for the standard
// mutex-backed lock, which is the only lock kind this runtime has
// (LOMP_LOCK_KIND is read and displayed but selects nothing else); it is
// kept because the ABI has the entry point.
func DestroyLock(l *Lock) {
	l.Destroy()
}

// SetLock blocks until l is acquired.
func SetLock(l *Lock) {
	l.Set()
}

// UnsetLock releases l.
func UnsetLock(l *Lock) {
	l.Unset()
}

// TestLock attempts to acquire l without blocking, reporting success.
func TestLock(l *Lock) bool {
	return l.Test()
}
