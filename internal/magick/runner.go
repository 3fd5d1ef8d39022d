package magick

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Result describes a finished child process
type Result struct {
	ExitCode int
	Duration time.Duration
}

// Runner spawns one child process for an argument vector and blocks until it exits
type Runner interface {
	Run(ctx context.Context, args []string) (Result, error)
}

// ExecRunner runs argument vectors with os/exec. Output of the child is discarded.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts args[0] with the remaining arguments and waits for it to exit.
// A non-zero exit status is reported in Result.ExitCode and is not an error.
func (r *ExecRunner) Run(ctx context.Context, args []string) (Result, error) {
	if len(args) == 0 {
		return Result{}, fmt.Errorf("%w: empty argument vector", ErrMissingArgument)
	}

	start := time.Now()
	slog.Info("starting process", "executable", args[0], "arg_count", len(args)-1)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		if ctx.Err() != nil {
			slog.Error("process interrupted before start", "executable", args[0], "error", ctx.Err())
			return Result{ExitCode: -1}, fmt.Errorf("%w: %s: %v", ErrProcessInterrupted, args[0], ctx.Err())
		}
		slog.Error("failed to start process", "executable", args[0], "error", err)
		return Result{ExitCode: -1}, fmt.Errorf("%w: cannot start %s: %v", ErrProcessFailure, args[0], err)
	}

	err := cmd.Wait()
	result := Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if ctx.Err() != nil {
		slog.Error("process interrupted",
			"executable", args[0],
			"duration_ms", result.Duration.Milliseconds(),
			"error", ctx.Err())
		return result, fmt.Errorf("%w: %s: %v", ErrProcessInterrupted, args[0], ctx.Err())
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		slog.Error("process wait failed", "executable", args[0], "error", err)
		return result, fmt.Errorf("%w: %s: %v", ErrProcessFailure, args[0], err)
	}

	slog.Info("process completed",
		"executable", args[0],
		"exit_code", result.ExitCode,
		"duration_ms", result.Duration.Milliseconds())

	return result, nil
}
