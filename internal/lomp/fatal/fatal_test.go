package fatal

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWarnFiresOnceOnlyPerSite(t *testing.T) {
	site := "test:duplicate-warning"
	warnOnce.Delete(site)

	var fired int32
	wrap := func() {
		onceAny, _ := warnOnce.LoadOrStore(site, new(sync.Once))
		onceAny.(*sync.Once).Do(func() {
			atomic.AddInt32(&fired, 1)
		})
	}

	for i := 0; i < 5; i++ {
		wrap()
	}

	if fired != 1 {
		t.Fatalf("expected exactly 1 fire across repeated warnings at the same site, got %d", fired)
	}
}

func TestWarnDoesNotPanic(t *testing.T) {
	Warn("test:smoke", "value=%d", 42)
}
