package barrier

import (
	"fmt"
	"sort"
)

// Factory builds a Barrier sized for n threads.
type Factory func(n int) Barrier

var registry = map[string]Factory{
	"atomic-naive": func(n int) Barrier {
		return NewCentralized("atomic-naive", NewAtomicCounter(n), NewNaiveBroadcast(n))
	},
	"flag-naive": func(n int) Barrier {
		return NewCentralized("flag-naive", NewFlagCounter(n), NewNaiveBroadcast(n))
	},
	"fixed-tree16-flag-lbw4": func(n int) Barrier {
		return NewCentralized("fixed-tree16-flag-lbw4", NewFixedTreeCounter(n, 16), NewLBWBroadcast(n, 4))
	},
	"fixed-tree4-atomic-naive": func(n int) Barrier {
		return NewCentralized("fixed-tree4-atomic-naive", NewFixedTreeCounter(n, 4), NewNaiveBroadcast(n))
	},
	"dynamic-tree-naive": func(n int) Barrier {
		return NewCentralized("dynamic-tree-naive", NewDynamicTreeCounter(n), NewNaiveBroadcast(n))
	},
	"dynamic-tree-lbw4": func(n int) Barrier {
		return NewCentralized("dynamic-tree-lbw4", NewDynamicTreeCounter(n), NewLBWBroadcast(n, 4))
	},
	"dissemination": func(n int) Barrier {
		return NewDissemination(n)
	},
}

// Names lists every registered barrier kind, sorted for stable display.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named barrier. An unknown name is fatal: LOMP_BARRIER_KIND
// is operator-supplied configuration, not user data, so there is no
// sensible fallback.
func New(name string, n int) (Barrier, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown barrier kind %q (known: %v)", name, Names())
	}
	return factory(n), nil
}
