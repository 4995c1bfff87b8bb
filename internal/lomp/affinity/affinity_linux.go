//go:build linux

package affinity

import "golang.org/x/sys/unix"

// pin uses sched_setaffinity to restrict the calling thread to a single
// logical CPU.
func pin(id int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(id % runtimeNumCPU())
	return unix.SchedSetaffinity(0, &set)
}

// runtimeNumCPU returns the number of CPUs in the calling thread's
// affinity mask (1 if the mask cannot be read), the modulus pin wraps ids by.
func runtimeNumCPU() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil || set.Count() == 0 {
		return 1
	}
	return set.Count()
}
