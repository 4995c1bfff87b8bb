// Package main implements the lompctl CLI tool.
//
// lompctl is a thin wrapper around the Go toolchain for programs that call
// into the lomp runtime. It works by:
//
//  1. Resolving the LOMP/OMP environment variables the same way the
//     runtime itself would (internal/lomp/env)
//  2. Optionally printing the resolved ICVs, the way OMP_DISPLAY_ENV does
//     inside the runtime itself
//  3. Shelling out to 'go run' with those variables forwarded, locating
//     the target module via its go.mod
//
// Usage:
//
//	lompctl run main.go          # run a program with LOMP/OMP vars forwarded
//	lompctl env                  # resolve and print the current ICVs
//
// This is the CLI entry point for the standalone lompctl tool.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runCommand(os.Args[2:])
	case "env":
		envCommand(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("lompctl version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`lompctl - lomp runtime launcher

USAGE:
    lompctl <command> [arguments]

COMMANDS:
    run        Run a Go program with LOMP_*/OMP_* variables forwarded
    env        Resolve and print the current ICVs
    version    Show version information
    help       Show this help message

EXAMPLES:
    # Run a program, forwarding every LOMP_*/OMP_* variable currently set
    lompctl run main.go

    # Run a program, printing the resolved ICVs first
    OMP_DISPLAY_ENV=verbose lompctl run ./cmd/mysolver

    # Print the ICVs that would be resolved right now
    OMP_NUM_THREADS=4 lompctl env

ABOUT:
    lompctl does not itself schedule any work; it is a convenience wrapper
    that resolves the environment the lomp runtime reads at startup and
    shells out to 'go run' for the target package, after locating that
    package's own module root via its go.mod.
`)
}

// runCommand is implemented in run.go
// envCommand is implemented in env.go
