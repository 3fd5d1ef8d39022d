package magick

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

func lookPathOrSkip(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return path
}

func TestExecRunner_ExitCodes(t *testing.T) {
	sh := lookPathOrSkip(t, "sh")
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), []string{sh, "-c", "exit 0"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", result.ExitCode)
	}

	result, err = runner.Run(context.Background(), []string{sh, "-c", "exit 3"})
	if err != nil {
		t.Fatalf("Expected non-zero exit not to be an error, got %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", result.ExitCode)
	}
}

func TestExecRunner_WrongPath(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), []string{"/path/to/imagemagick/convert", "-version"})
	if !errors.Is(err, ErrProcessFailure) {
		t.Errorf("Expected ErrProcessFailure, got %v", err)
	}
}

func TestExecRunner_EmptyArgs(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), nil)
	if !errors.Is(err, ErrMissingArgument) {
		t.Errorf("Expected ErrMissingArgument, got %v", err)
	}
}

func TestExecRunner_Interrupted(t *testing.T) {
	sh := lookPathOrSkip(t, "sh")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewExecRunner().Run(ctx, []string{sh, "-c", "sleep 5"})
	if !errors.Is(err, ErrProcessInterrupted) {
		t.Errorf("Expected ErrProcessInterrupted, got %v", err)
	}
}

func TestExecRunner_CancelledBeforeStart(t *testing.T) {
	sh := lookPathOrSkip(t, "sh")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewExecRunner().Run(ctx, []string{sh, "-c", "exit 0"})
	if !errors.Is(err, ErrProcessInterrupted) {
		t.Fatalf("Expected ErrProcessInterrupted, got %v", err)
	}
	if errors.Is(err, ErrProcessFailure) {
		t.Errorf("Expected cancellation not to count as a process failure, got %v", err)
	}
	if result.ExitCode != -1 {
		t.Errorf("Expected exit code -1, got %d", result.ExitCode)
	}
}
