package lomp

import (
	"github.com/parallel-runtimes/lomp/internal/lomp/env"
	"github.com/parallel-runtimes/lomp/internal/lomp/timing"
)

// ScheduleKind names a loop schedule, as OMP_SCHEDULE and SetSchedule
// accept it.
type ScheduleKind = env.ScheduleKind

const (
	ScheduleStatic     = env.Static
	ScheduleDynamic    = env.Dynamic
	ScheduleGuided     = env.Guided
	ScheduleAuto       = env.Auto
	ScheduleImbalanced = env.Imbalanced
)

// Monotonicity names the optional OMP_SCHEDULE modifier.
type Monotonicity = env.Monotonicity

const (
	Unspecified  = env.Unspecified
	Monotonic    = env.Monotonic
	Nonmonotonic = env.Nonmonotonic
)

// Schedule is a resolved schedule kind, modifier, and chunk size.
type Schedule = env.Schedule

// GetWtime returns the number of seconds since an arbitrary but fixed
// reference point, monotonically across a single process.
func GetWtime() float64 {
	return timing.Seconds()
}

// SetSchedule implements omp_set_schedule: overrides the runtime
// schedule used by schedule(runtime) loops from this call onward. Takes
// effect immediately, including for loops already dispatching under the
// previous setting at another dynamic instance.
func SetSchedule(s Schedule) {
	runtime().SetRuntimeSchedule(s)
}

// GetSchedule implements omp_get_schedule: reads back whatever was last
// set by SetSchedule (or the OMP_SCHEDULE default if it never was).
func GetSchedule() Schedule {
	return runtime().RuntimeSchedule()
}
