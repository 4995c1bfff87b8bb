// Package fatal implements LOMP's one error-handling policy: every error
// this runtime can detect is unrecoverable, so every error kind aborts the
// process after writing a single diagnostic line to stderr. Warnings print
// once and let the caller continue with a default.
package fatal

import (
	"fmt"
	"os"
	"sync"
)

// Kind names one of the error conditions the runtime can detect. None of
// these are caller-recoverable.
type Kind string

const (
	NestedParallel             Kind = "NestedParallel"
	UnsupportedChange          Kind = "UnsupportedChange"
	UnknownBarrier             Kind = "UnknownBarrier"
	UnknownLock                Kind = "UnknownLock"
	UnknownSchedule            Kind = "UnknownSchedule"
	TooManyThreads             Kind = "TooManyThreads"
	MisuseOfDistributedBarrier Kind = "MisuseOfDistributedBarrier"
	Assertion                  Kind = "Assertion"
)

// traceFlush is installed through SetTraceFlush, so that Abort can flush a
// trace ring buffer before the process dies without fatal importing env
// (which would cycle: env needs fatal.Warn for its own unknown-value
// diagnostics). Nothing in this repository registers one, so Abort
// currently flushes nothing.
var traceFlush func()

// SetTraceFlush registers the function Abort calls to flush the trace ring
// buffer, if tracing is enabled. Safe to call once during startup.
func SetTraceFlush(f func()) {
	traceFlush = f
}

// Abort writes one newline-terminated, kind-tagged diagnostic to stderr,
// flushes the trace ring buffer if one is registered, then terminates the
// process with a non-zero status. It never returns.
func Abort(kind Kind, format string, args ...any) {
	if traceFlush != nil {
		traceFlush()
	}
	fmt.Fprintf(os.Stderr, "lomp: fatal error [%s]: %s\n", kind, fmt.Sprintf(format, args...))
	os.Exit(1)
}

var warnOnce sync.Map // site string -> *sync.Once

// Warn prints a diagnostic once per distinct site and lets the caller
// continue with its default behaviour. site identifies the call location
// (e.g. "reduction:forced-mode-unsupported") so repeated warnings from a
// hot loop collapse to a single line.
func Warn(site string, format string, args ...any) {
	onceAny, _ := warnOnce.LoadOrStore(site, new(sync.Once))
	onceAny.(*sync.Once).Do(func() {
		fmt.Fprintf(os.Stderr, "lomp: warning: %s\n", fmt.Sprintf(format, args...))
	})
}
