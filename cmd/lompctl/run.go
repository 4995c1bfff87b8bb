// run.go implements the 'lompctl run' command.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/parallel-runtimes/lomp/internal/lomp/env"
)

// runCommand implements the 'lompctl run' command.
//
// This command resolves the target's module path (by reading its go.mod),
// optionally prints the ICVs the runtime will resolve at startup, and
// then runs the target with 'go run', forwarding the current process
// environment (and therefore every LOMP_*/OMP_* variable already set)
// unchanged.
//
// Example:
//
//	lompctl run main.go
//	lompctl run ./cmd/mysolver arg1 arg2
func runCommand(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no target specified")
		os.Exit(1)
	}

	target := args[0]
	programArgs := args[1:]

	modPath, modRoot, err := resolveModule(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not resolve target module: %v\n", err)
	} else if os.Getenv("LOMP_TRACE") != "" {
		fmt.Fprintf(os.Stderr, "lompctl: running %s from module %s (root %s)\n", target, modPath, modRoot)
	}

	env.Resolve() // prints the ICV dump itself when OMP_DISPLAY_ENV names verbose mode

	exitCode := runTarget(target, programArgs)
	os.Exit(exitCode)
}

// resolveModule walks up from target's directory looking for a go.mod,
// the same way 'go run' itself resolves a module root, and returns the
// module path declared there plus the directory it was found in.
func resolveModule(target string) (modPath, modRoot string, err error) {
	startDir := target
	if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	startDir, err = filepath.Abs(startDir)
	if err != nil {
		return "", "", err
	}

	dir := startDir
	for {
		goModPath := filepath.Join(dir, "go.mod")
		data, readErr := os.ReadFile(goModPath)
		if readErr == nil {
			mf, parseErr := modfile.Parse(goModPath, data, nil)
			if parseErr != nil {
				return "", "", fmt.Errorf("parsing %s: %w", goModPath, parseErr)
			}
			if mf.Module == nil {
				return "", "", fmt.Errorf("%s has no module directive", goModPath)
			}
			return mf.Module.Mod.Path, dir, nil
		}
		if !errors.Is(readErr, os.ErrNotExist) {
			return "", "", readErr
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", fmt.Errorf("no go.mod found above %s", startDir)
		}
		dir = parent
	}
}

// runTarget runs 'go run' on target, forwarding stdin/stdout/stderr and
// the current environment, and returns the child's exit code.
func runTarget(target string, programArgs []string) int {
	goArgs := append([]string{"run", target}, programArgs...)
	cmd := exec.Command("go", goArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error running target: %v\n", err)
		return 1
	}
	return 0
}
