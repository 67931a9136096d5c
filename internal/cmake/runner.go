// Package cmake builds CMake command lines and runs them.
package cmake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Invocation is one external process run.
type Invocation struct {
	Step   string // "configure", "build", "test"
	Binary string
	Args   []string
	Dir    string
}

// String renders the command line for display.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, quote(inv.Binary))
	for _, a := range inv.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Runner executes an invocation and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// ExitError reports a process that ran but exited non-zero.
type ExitError struct {
	Step     string
	Command  string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s failed with exit code %d: %s", e.Step, e.ExitCode, e.Command)
}

// ExecRunner runs invocations as child processes with their output passed
// through. Cancelling the context kills the child.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the process and waits for it.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctx.Err() != nil {
			return fmt.Errorf("%s interrupted: %w", inv.Step, ctx.Err())
		}
		return &ExitError{Step: inv.Step, Command: inv.String(), ExitCode: exitErr.ExitCode()}
	}
	return fmt.Errorf("%s: failed to start %s: %w", inv.Step, inv.Binary, err)
}

// ConfigureOptions describes a configure run.
type ConfigureOptions struct {
	SourceDir     string
	BuildDir      string
	Configuration string
	Generator     string
	Defines       map[string]string
}

// ConfigureArgs returns the arguments for `cmake -S <src> -B <build> ...`.
// User defines are appended in name order so command lines are stable.
func ConfigureArgs(opts ConfigureOptions) []string {
	args := []string{"-S", opts.SourceDir, "-B", opts.BuildDir}
	if opts.Configuration != "" {
		args = append(args, "-DCMAKE_BUILD_TYPE="+opts.Configuration)
	}
	if opts.Generator != "" {
		args = append(args, "-G", opts.Generator)
	}

	keys := make([]string, 0, len(opts.Defines))
	for k := range opts.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, fmt.Sprintf("-D%s=%s", k, opts.Defines[k]))
	}
	return args
}

// BuildOptions describes a build run.
type BuildOptions struct {
	BuildDir      string
	Configuration string
	Parallel      bool
}

// BuildArgs returns the arguments for `cmake --build <build> --config <cfg>`.
func BuildArgs(opts BuildOptions) []string {
	args := []string{"--build", opts.BuildDir}
	if opts.Configuration != "" {
		args = append(args, "--config", opts.Configuration)
	}
	if opts.Parallel {
		args = append(args, "--parallel")
	}
	return args
}
