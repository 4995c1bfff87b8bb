package rng

import (
	"runtime"
	"time"
)

// maxMask caps the exponential backoff at 256 units (about 25.6us at the
// default 100ns unit), matching the source generator's tuning.
const maxMask = 255

// unit is the nominal delay granularity. Real OpenMP-lite runtimes calibrate
// this from the CPU's cycle counter; a fixed wall-clock unit is simpler and
// still a correct stand-in since no code elsewhere depends on the exact
// calibration, only on backoff being monotonically increasing.
const unit = 100 * time.Nanosecond

// ExponentialBackoff produces randomized, doubling delays for a thread
// spinning on contended state. Each doubling step is held for two calls to
// Sleep before ramping further.
type ExponentialBackoff struct {
	random     *MLFSR32
	mask       uint32
	sleepCount uint32
}

// NewExponentialBackoff creates a backoff sleeper seeded from seed.
func NewExponentialBackoff(seed uint32) *ExponentialBackoff {
	return &ExponentialBackoff{random: New(seed), mask: 1}
}

// Sleep waits a randomized amount of time, then ramps the delay range up
// every other call until it saturates at maxMask units.
func (b *ExponentialBackoff) Sleep() {
	count := 1 + (b.random.Next() & b.mask)
	end := time.Now().Add(time.Duration(count) * unit)
	b.sleepCount++
	if b.sleepCount&1 == 0 {
		b.mask = ((b.mask << 1) | 1) & maxMask
	}
	for time.Now().Before(end) {
		runtime.Gosched()
	}
}

// AtLimit reports whether the backoff has saturated its maximum delay range.
func (b *ExponentialBackoff) AtLimit() bool {
	return b.mask == maxMask
}
