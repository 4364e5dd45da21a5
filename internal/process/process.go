// Package process launches test executables and reports how they ended.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ErrInterrupted is returned when the run was cut short by an interrupt
// before the process exited on its own.
var ErrInterrupted = errors.New("interrupted")

// LaunchError reports that a process could not be started or waited for at
// the OS level. No exit code exists in that case.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsLaunchError reports whether err is or wraps a *LaunchError.
func IsLaunchError(err error) bool {
	var le *LaunchError
	return errors.As(err, &le)
}

// Spec describes one process launch.
type Spec struct {
	Path string   // Executable path
	Dir  string   // Working directory; empty inherits the caller's
	Env  []string // Full environment; nil inherits the caller's

	// Stdout and Stderr receive the child's streams. A nil writer discards
	// the stream. Ignored when Capture is set.
	Stdout io.Writer
	Stderr io.Writer

	// Capture collects stdout and stderr together into Result.Output.
	Capture bool
}

// Result is the outcome of a process that ran to completion.
type Result struct {
	ExitCode int
	Output   []byte // Combined output when Spec.Capture was set
}

// Launcher runs a process synchronously.
type Launcher interface {
	// Run starts the process described by spec and blocks until it exits.
	// A process that exits with any code returns a nil error. Failure to
	// start returns a *LaunchError; cancellation of ctx or death by SIGINT
	// returns an error wrapping ErrInterrupted.
	Run(ctx context.Context, spec Spec) (Result, error)
}

// ExecLauncher implements Launcher with os/exec.
type ExecLauncher struct{}

// Run implements Launcher.
func (ExecLauncher) Run(ctx context.Context, spec Spec) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("%s: %w", spec.Path, ErrInterrupted)
	}

	cmd := exec.CommandContext(ctx, spec.Path)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env

	var buf bytes.Buffer
	if spec.Capture {
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	} else {
		cmd.Stdout = orDiscard(spec.Stdout)
		cmd.Stderr = orDiscard(spec.Stderr)
	}

	if err := cmd.Start(); err != nil {
		return Result{}, &LaunchError{Path: spec.Path, Err: err}
	}

	err := cmd.Wait()
	if ctx.Err() != nil {
		return Result{}, fmt.Errorf("%s: %w", spec.Path, ErrInterrupted)
	}

	res := Result{Output: buf.Bytes()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The child can see a terminal Ctrl-C before our own handler
		// cancels ctx.
		if killedByInterrupt(exitErr) {
			return Result{}, fmt.Errorf("%s: %w", spec.Path, ErrInterrupted)
		}
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return Result{}, &LaunchError{Path: spec.Path, Err: err}
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
