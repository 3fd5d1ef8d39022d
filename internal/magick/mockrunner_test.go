package magick

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// mockRunner records every argument vector instead of spawning a process
type mockRunner struct {
	calls   [][]string
	result  Result
	runFunc func(ctx context.Context, args []string) (Result, error)
}

func (m *mockRunner) Run(ctx context.Context, args []string) (Result, error) {
	m.calls = append(m.calls, append([]string(nil), args...))
	if m.runFunc != nil {
		return m.runFunc(ctx, args)
	}
	return m.result, nil
}

// newMockRunnerWithError creates a runner that fails every call with err
func newMockRunnerWithError(err error) *mockRunner {
	return &mockRunner{
		runFunc: func(ctx context.Context, args []string) (Result, error) {
			return Result{ExitCode: -1}, err
		},
	}
}

// writeImage saves a solid image of the given size and returns its path
func writeImage(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(width, height, color.NRGBA{R: 30, G: 144, B: 255, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func writeText(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
