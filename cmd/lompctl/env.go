// env.go implements the 'lompctl env' command.
package main

import (
	"os"

	"github.com/parallel-runtimes/lomp/internal/lomp/env"
)

// envCommand implements the 'lompctl env' command: resolve the current
// process environment into ICVs the way the runtime itself would at
// startup, and print them exactly once regardless of OMP_DISPLAY_ENV
// (env.Resolve prints its own dump when that variable names verbose mode,
// so it is cleared here to avoid printing the dump twice).
func envCommand(_ []string) {
	saved, had := os.LookupEnv("OMP_DISPLAY_ENV")
	os.Unsetenv("OMP_DISPLAY_ENV")
	icv := env.Resolve()
	if had {
		os.Setenv("OMP_DISPLAY_ENV", saved)
	}
	icv.Print(os.Stdout)
}
