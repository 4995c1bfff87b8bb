// Package lock implements the one standard lock the compiler-facing ABI
// exposes for critical sections, and the lazily initialized table that
// backs named critical sections.
package lock

import "sync"

// HintKind names the acquisition-strategy hint an omp_init_lock_with_hint
// call can pass. The hint is recorded but informational only: every Lock is
// backed by the same sync.Mutex whatever the hint, and the hint never
// changes the lock's external semantics.
type HintKind int

const (
	HintNone HintKind = iota
	HintContended
	HintUncontended
	HintSpeculative
)

// Lock is the process-wide mutual-exclusion primitive behind an opaque
// handle: an ordinary process-level mutual-exclusion primitive.
type Lock struct {
	mu   sync.Mutex
	hint HintKind
}

// New creates an unlocked Lock honoring hint (informational only).
func New(hint HintKind) *Lock {
	return &Lock{hint: hint}
}

// Set acquires the lock, blocking until it is available.
func (l *Lock) Set() { l.mu.Lock() }

// Unset releases the lock.
func (l *Lock) Unset() { l.mu.Unlock() }

// Test attempts to acquire the lock without blocking, reporting success.
func (l *Lock) Test() bool { return l.mu.TryLock() }

// Destroy is a no-op: a sync.Mutex needs no explicit teardown, and calling
// Set/Unset after Destroy remains well defined.
func (l *Lock) Destroy() {}

// Table is the lazily-initialized map from critical-section names to their
// Lock, used by the Critical/EndCritical ABI entry points. A Table entry is
// created at most once no matter how many threads race to enter the same
// named critical section first.
type Table struct {
	mu    sync.Mutex
	locks map[string]*Lock
}

// NewTable creates an empty critical-section table.
func NewTable() *Table {
	return &Table{locks: make(map[string]*Lock)}
}

// Get returns the Lock for name, creating it under the table's global mutex
// if this is the first thread to reach that name. Every call, including one
// for a name already present, takes the table's mutex for a single lookup
// (a Go map needs a lock for concurrent access); a new Lock is allocated
// only when the name is missing.
func (t *Table) Get(name string) *Lock {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[name]
	if !ok {
		l = New(HintNone)
		t.locks[name] = l
	}
	return l
}
