// Package env resolves LOMP's internal control variables (ICVs) from the
// OMP_* and LOMP_* environment variables.
package env

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/parallel-runtimes/lomp/internal/lomp/fatal"
)

// ScheduleKind names a loop schedule, as accepted by OMP_SCHEDULE and the
// runtime set_schedule entry point.
type ScheduleKind string

const (
	Static     ScheduleKind = "static"
	Dynamic    ScheduleKind = "dynamic"
	Guided     ScheduleKind = "guided"
	Auto       ScheduleKind = "auto"
	Imbalanced ScheduleKind = "imbalanced" // debug-only schedule: hands out wildly uneven chunks to exercise load balancing
)

// Monotonicity names the optional OMP_SCHEDULE modifier.
type Monotonicity string

const (
	Unspecified  Monotonicity = ""
	Monotonic    Monotonicity = "monotonic"
	Nonmonotonic Monotonicity = "nonmonotonic"
)

// Schedule is the resolved value of OMP_SCHEDULE / omp_set_schedule.
type Schedule struct {
	Kind         ScheduleKind
	Monotonicity Monotonicity
	Chunk        int
}

// StealPolicy names the task-stealing strategy used when a thread's own
// deque is empty, selected by LOMP_STEAL_POLICY.
type StealPolicy string

const (
	RoundRobin   StealPolicy = "round-robin"
	RandomUnif   StealPolicy = "random"
	NUMAAware    StealPolicy = "numa"
)

// ICVs holds every environment-derived setting LOMP reads once at startup.
type ICVs struct {
	NumThreads     int
	Schedule       Schedule
	DisplayEnv     bool
	LockKind       string
	BarrierKind    string
	ReductionStyle string
	StealPolicy    StealPolicy
	Debug          int
	Trace          int
}

// Resolve reads the process environment and returns the fully resolved ICV
// set, applying every documented default.
func Resolve() ICVs {
	icv := ICVs{
		NumThreads:     numThreads(),
		Schedule:       schedule(),
		DisplayEnv:     displayEnv(),
		LockKind:       getOr("LOMP_LOCK_KIND", "mutex"),
		BarrierKind:    getOr("LOMP_BARRIER_KIND", "fixed-tree16-flag-lbw4"),
		ReductionStyle: getOr("LOMP_REDUCTION_STYLE", ""),
		StealPolicy:    stealPolicy(),
		Debug:          intOr("LOMP_DEBUG", 0),
		Trace:          intOr("LOMP_TRACE", 0),
	}
	if icv.DisplayEnv {
		icv.Print(os.Stdout)
	}
	return icv
}

func numThreads() int {
	v, ok := os.LookupEnv("OMP_NUM_THREADS")
	if !ok {
		return runtime.NumCPU()
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// schedule parses "[modifier:]kind[,chunk]". An unparsable value is fatal.
func schedule() Schedule {
	v, ok := os.LookupEnv("OMP_SCHEDULE")
	if !ok || strings.TrimSpace(v) == "" {
		return Schedule{Kind: Static, Chunk: 0}
	}

	rest := v
	mod := Unspecified
	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		switch Monotonicity(strings.ToLower(strings.TrimSpace(rest[:idx]))) {
		case Monotonic:
			mod = Monotonic
		case Nonmonotonic:
			mod = Nonmonotonic
		default:
			fatal.Abort(fatal.UnknownSchedule, "unrecognized OMP_SCHEDULE modifier %q", rest[:idx])
		}
		rest = rest[idx+1:]
	}

	kindPart := rest
	chunk := 0
	if idx := strings.IndexByte(rest, ','); idx >= 0 {
		kindPart = rest[:idx]
		c, err := strconv.Atoi(strings.TrimSpace(rest[idx+1:]))
		if err != nil {
			fatal.Abort(fatal.UnknownSchedule, "unparsable chunk size in OMP_SCHEDULE %q", v)
		}
		chunk = c
	}

	kind := ScheduleKind(strings.ToLower(strings.TrimSpace(kindPart)))
	switch kind {
	case Static, Dynamic, Guided, Auto, Imbalanced:
	default:
		fatal.Abort(fatal.UnknownSchedule, "unrecognized OMP_SCHEDULE kind %q", kindPart)
	}

	return Schedule{Kind: kind, Monotonicity: mod, Chunk: chunk}
}

func displayEnv() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("OMP_DISPLAY_ENV")))
	switch v {
	case "true", "1", "verbose":
		return true
	default:
		return false
	}
}

func stealPolicy() StealPolicy {
	v := StealPolicy(strings.ToLower(strings.TrimSpace(os.Getenv("LOMP_STEAL_POLICY"))))
	switch v {
	case RoundRobin, RandomUnif, NUMAAware:
		return v
	case "":
		return NUMAAware
	default:
		fatal.Warn("env:steal-policy", "unrecognized LOMP_STEAL_POLICY %q, defaulting to numa", v)
		return NUMAAware
	}
}

func getOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

func intOr(name string, def int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Print writes a human-readable ICV dump, as OMP_DISPLAY_ENV=verbose would.
func (icv ICVs) Print(w *os.File) {
	fmt.Fprintln(w, "OPENMP DISPLAY ENVIRONMENT BEGIN")
	fmt.Fprintf(w, "  OMP_NUM_THREADS = %d\n", icv.NumThreads)
	fmt.Fprintf(w, "  OMP_SCHEDULE = %s%s", schedModifierPrefix(icv.Schedule.Monotonicity), icv.Schedule.Kind)
	if icv.Schedule.Chunk > 0 {
		fmt.Fprintf(w, ",%d", icv.Schedule.Chunk)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  LOMP_LOCK_KIND = %s\n", icv.LockKind)
	fmt.Fprintf(w, "  LOMP_BARRIER_KIND = %s\n", icv.BarrierKind)
	fmt.Fprintf(w, "  LOMP_REDUCTION_STYLE = %s\n", orNone(icv.ReductionStyle))
	fmt.Fprintf(w, "  LOMP_STEAL_POLICY = %s\n", icv.StealPolicy)
	fmt.Fprintln(w, "OPENMP DISPLAY ENVIRONMENT END")
}

func schedModifierPrefix(m Monotonicity) string {
	if m == Unspecified {
		return ""
	}
	return string(m) + ":"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
