package loop

import (
	"testing"

	"github.com/parallel-runtimes/lomp/internal/lomp/env"
)

func TestResolveStaticDefaultsToBlocked(t *testing.T) {
	kind, chunk := Resolve(env.Schedule{Kind: env.Static}, 4)
	if kind != StaticBlocked || chunk != 1 {
		t.Fatalf("got kind=%v chunk=%d", kind, chunk)
	}
}

func TestResolveStaticWithChunkIsChunked(t *testing.T) {
	kind, chunk := Resolve(env.Schedule{Kind: env.Static, Chunk: 7}, 4)
	if kind != StaticChunked || chunk != 7 {
		t.Fatalf("got kind=%v chunk=%d", kind, chunk)
	}
}

func TestResolveSingleThreadIsAlwaysBlocked(t *testing.T) {
	kind, _ := Resolve(env.Schedule{Kind: env.Dynamic, Chunk: 3}, 1)
	if kind != StaticBlocked {
		t.Fatalf("expected a single-thread team to collapse to StaticBlocked, got %v", kind)
	}
}

func TestResolveNonmonotonicDynamicIsDefault(t *testing.T) {
	kind, _ := Resolve(env.Schedule{Kind: env.Dynamic}, 4)
	if kind != NonmonotonicDynamic {
		t.Fatalf("got %v", kind)
	}
}

func TestResolveMonotonicDynamic(t *testing.T) {
	kind, _ := Resolve(env.Schedule{Kind: env.Dynamic, Monotonicity: env.Monotonic}, 4)
	if kind != MonotonicDynamic {
		t.Fatalf("got %v", kind)
	}
}

func TestResolveAutoNonmonotonicBecomesDynamic(t *testing.T) {
	kind, _ := Resolve(env.Schedule{Kind: env.Auto}, 4)
	if kind != NonmonotonicDynamic {
		t.Fatalf("got %v", kind)
	}
}

func TestResolveImbalanced(t *testing.T) {
	kind, _ := Resolve(env.Schedule{Kind: env.Imbalanced}, 4)
	if kind != Imbalanced {
		t.Fatalf("got %v", kind)
	}
}
