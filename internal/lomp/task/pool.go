package task

import (
	"sync"

	"github.com/gammazero/deque"
)

// DefaultCapacity bounds how many tasks a thread keeps in its own pool
// before it starts running newly created tasks inline rather than
// queuing them.
const DefaultCapacity = 128

// Pool is one thread's deque of not-yet-executed tasks. The owning
// thread pushes and pops its own end (LIFO, favoring cache-hot
// recently-created tasks); thieves with an empty pool of their own pop
// the other end (FIFO, favoring the oldest, coarsest-grained tasks).
// Guarded by a plain mutex, matching the task pool's reference
// implementation rather than attempting a lock-free deque.
type Pool struct {
	mu       sync.Mutex
	dq       deque.Deque[*Descriptor]
	capacity int
}

// NewPool creates an empty pool that rejects Put once it holds capacity
// tasks.
func NewPool(capacity int) *Pool {
	return &Pool{capacity: capacity}
}

// Put enqueues task on the owning thread's end, returning false if the
// pool is already at capacity (in which case the caller must run the
// task itself rather than queue it).
func (p *Pool) Put(t *Descriptor) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dq.Len() >= p.capacity {
		return false
	}
	p.dq.PushBack(t)
	return true
}

// Get pops the owning thread's own end (LIFO), or returns nil if empty.
func (p *Pool) Get() *Descriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dq.Len() == 0 {
		return nil
	}
	return p.dq.PopBack()
}

// Steal pops the far end (FIFO) on behalf of a thief, or returns nil if
// empty.
func (p *Pool) Steal() *Descriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dq.Len() == 0 {
		return nil
	}
	return p.dq.PopFront()
}

// Len reports the number of queued tasks. Only a hint: it can be stale
// the instant it is read.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dq.Len()
}
