package magick

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jo-hoe/gomagick/internal/imagesize"
)

const convertPath = "/usr/bin/convert"

func TestOperations_StripMetadata(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "src.jpg", 10, 10)
	dest := filepath.Join(dir, "dest.jpg")
	notFound := filepath.Join(dir, "notfound")

	runner := &mockRunner{result: Result{ExitCode: 0}}
	ops := NewOperations(runner)
	ctx := context.Background()

	if _, err := ops.StripMetadata(ctx, convertPath, src, dest); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expected := []string{convertPath, src, "-strip", dest}
	if len(runner.calls) != 1 || !reflect.DeepEqual(runner.calls[0], expected) {
		t.Fatalf("Expected call %v, got %v", expected, runner.calls)
	}

	failures := []struct {
		name    string
		cmd     string
		src     string
		dest    string
		wantErr error
	}{
		{name: "No command path", cmd: "", src: src, dest: dest, wantErr: ErrMissingArgument},
		{name: "No src", cmd: convertPath, src: "", dest: dest, wantErr: ErrMissingArgument},
		{name: "Missing src", cmd: convertPath, src: notFound, dest: dest, wantErr: ErrNotFound},
		{name: "No dest", cmd: convertPath, src: src, dest: "", wantErr: ErrMissingArgument},
		{name: "Command path checked before src", cmd: "", src: notFound, dest: "", wantErr: ErrMissingArgument},
		{name: "Src checked before dest", cmd: convertPath, src: notFound, dest: "", wantErr: ErrNotFound},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			runner.calls = nil
			_, err := ops.StripMetadata(ctx, tt.cmd, tt.src, tt.dest)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if len(runner.calls) != 0 {
				t.Errorf("Expected no process to be spawned, got %v", runner.calls)
			}
		})
	}
}

func TestOperations_CreateThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "src.jpg", 10, 10)
	dest := filepath.Join(dir, "dest.jpg")

	runner := &mockRunner{}
	ops := NewOperations(runner)
	ctx := context.Background()

	if _, err := ops.CreateThumbnail(ctx, convertPath, src, dest, "200x100"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expected := []string{convertPath, "-thumbnail", "200x100", src, dest}
	if !reflect.DeepEqual(runner.calls[0], expected) {
		t.Errorf("Expected %v, got %v", expected, runner.calls[0])
	}

	failures := []struct {
		name    string
		dest    string
		size    string
		wantErr error
	}{
		{name: "No size", dest: dest, size: "", wantErr: ErrMissingArgument},
		{name: "Malformed size", dest: dest, size: "ax!00", wantErr: ErrMalformedSpec},
		{name: "Dest checked before size", dest: "", size: "ax!00", wantErr: ErrMissingArgument},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			runner.calls = nil
			_, err := ops.CreateThumbnail(ctx, convertPath, src, tt.dest, tt.size)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if len(runner.calls) != 0 {
				t.Error("Expected no process to be spawned")
			}
		})
	}
}

func TestOperations_Resize(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "src.png", 600, 450)
	dest := filepath.Join(dir, "dest.png")
	ctx := context.Background()

	tests := []struct {
		name     string
		side     imagesize.Side
		pixel    int
		expected string
	}{
		{name: "Landscape 400", side: imagesize.Landscape, pixel: 400, expected: "400x300"},
		{name: "Portrait 100 truncates width", side: imagesize.Portrait, pixel: 100, expected: "133x100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{}
			ops := NewOperations(runner)
			if _, err := ops.Resize(ctx, convertPath, src, dest, tt.side, tt.pixel); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			expected := []string{convertPath, "-thumbnail", tt.expected, src, dest}
			if len(runner.calls) != 1 || !reflect.DeepEqual(runner.calls[0], expected) {
				t.Errorf("Expected %v, got %v", expected, runner.calls)
			}
		})
	}

	failures := []struct {
		name    string
		cmd     string
		src     string
		dest    string
		side    imagesize.Side
		pixel   int
		wantErr error
	}{
		{name: "No command path", cmd: "", src: src, dest: dest, side: imagesize.Portrait, pixel: 1, wantErr: ErrMissingArgument},
		{name: "Missing src", cmd: convertPath, src: filepath.Join(dir, "nope"), dest: dest, side: imagesize.Portrait, pixel: 1, wantErr: ErrNotFound},
		{name: "No dest", cmd: convertPath, src: src, dest: "", side: imagesize.Portrait, pixel: 1, wantErr: ErrMissingArgument},
		{name: "No side", cmd: convertPath, src: src, dest: dest, side: nil, pixel: 1, wantErr: ErrMissingArgument},
		{name: "Negative pixel", cmd: convertPath, src: src, dest: dest, side: imagesize.Portrait, pixel: -1, wantErr: ErrOutOfRange},
		{name: "Zero pixel", cmd: convertPath, src: src, dest: dest, side: imagesize.Portrait, pixel: 0, wantErr: ErrOutOfRange},
		{name: "Dest checked before pixel", cmd: convertPath, src: src, dest: "", side: imagesize.Portrait, pixel: 0, wantErr: ErrMissingArgument},
		{name: "Pixel overflowing derived side", cmd: convertPath, src: src, dest: dest, side: imagesize.Landscape, pixel: math.MaxInt / 2, wantErr: ErrOutOfRange},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{}
			ops := NewOperations(runner)
			_, err := ops.Resize(ctx, tt.cmd, tt.src, tt.dest, tt.side, tt.pixel)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if len(runner.calls) != 0 {
				t.Error("Expected no process to be spawned")
			}
		})
	}
}

func TestOperations_Resize_UndecodableSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writeText(t, src, "plain text")

	runner := &mockRunner{}
	_, err := NewOperations(runner).Resize(context.Background(), convertPath, src, filepath.Join(dir, "d.png"), imagesize.Landscape, 10)
	if err == nil {
		t.Fatal("Expected decode error")
	}
	if IsValidationError(err) {
		t.Errorf("Expected decode error outside the validation taxonomy, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Error("Expected no process to be spawned")
	}
}

func TestOperations_CreateMontage(t *testing.T) {
	dir := t.TempDir()
	var srcs []string
	for _, name := range []string{"25.png", "50.png", "75.png", "100.png"} {
		srcs = append(srcs, writeImage(t, dir, name, 100, 100))
	}
	dest := filepath.Join(dir, "dest.png")
	ctx := context.Background()

	runner := &mockRunner{}
	ops := NewOperations(runner)
	if _, err := ops.CreateMontage(ctx, "/usr/bin/montage", srcs, "2x2", "100x100", dest); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expected := append([]string{"/usr/bin/montage", "-tile", "2x2", "-geometry", "100x100"}, srcs...)
	expected = append(expected, dest)
	if !reflect.DeepEqual(runner.calls[0], expected) {
		t.Errorf("Expected %v, got %v", expected, runner.calls[0])
	}

	failures := []struct {
		name     string
		cmd      string
		srcs     []string
		tile     string
		geometry string
		dest     string
		wantErr  error
	}{
		{name: "No command path", cmd: "", srcs: srcs, tile: "2x2", geometry: "100x100", dest: dest, wantErr: ErrMissingArgument},
		{name: "Nil srcFiles", cmd: "montage", srcs: nil, tile: "2x2", geometry: "100x100", dest: dest, wantErr: ErrMissingArgument},
		{name: "Empty srcFiles", cmd: "montage", srcs: []string{}, tile: "2x2", geometry: "100x100", dest: dest, wantErr: ErrMissingArgument},
		{name: "Missing src in list", cmd: "montage", srcs: []string{filepath.Join(dir, "notfound")}, tile: "2x2", geometry: "100x100", dest: dest, wantErr: ErrNotFound},
		{name: "No tile", cmd: "montage", srcs: srcs, tile: "", geometry: "100x100", dest: dest, wantErr: ErrMissingArgument},
		{name: "Malformed tile", cmd: "montage", srcs: srcs, tile: "1x!", geometry: "100x100", dest: dest, wantErr: ErrMalformedSpec},
		{name: "Tile count mismatch", cmd: "montage", srcs: srcs, tile: "2x3", geometry: "100x100", dest: dest, wantErr: ErrCountMismatch},
		{name: "No geometry", cmd: "montage", srcs: srcs, tile: "2x2", geometry: "", dest: dest, wantErr: ErrMissingArgument},
		{name: "Malformed geometry", cmd: "montage", srcs: srcs, tile: "2x2", geometry: "1x!", dest: dest, wantErr: ErrMalformedSpec},
		{name: "No dest", cmd: "montage", srcs: srcs, tile: "2x2", geometry: "100x100", dest: "", wantErr: ErrMissingArgument},
		{name: "Dest checked before tile", cmd: "montage", srcs: srcs, tile: "1x!", geometry: "100x100", dest: "", wantErr: ErrMissingArgument},
		{name: "Geometry checked before count", cmd: "montage", srcs: srcs, tile: "2x3", geometry: "1x!", dest: dest, wantErr: ErrMalformedSpec},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			runner.calls = nil
			_, err := ops.CreateMontage(ctx, tt.cmd, tt.srcs, tt.tile, tt.geometry, tt.dest)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if len(runner.calls) != 0 {
				t.Error("Expected no process to be spawned")
			}
		})
	}
}

func TestOperations_RunRaw(t *testing.T) {
	runner := &mockRunner{result: Result{ExitCode: 3}}
	ops := NewOperations(runner)
	ctx := context.Background()

	command := NewCommand(convertPath).AddParameter("-thumbnail").AddParameter("200x100").
		AddParameter("src.jpg").AddParameter("dest.jpg")

	result, err := ops.RunRaw(ctx, command)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("Expected exit code to be propagated, got %d", result.ExitCode)
	}
	expected := []string{convertPath, "-thumbnail", "200x100", "src.jpg", "dest.jpg"}
	if !reflect.DeepEqual(runner.calls[0], expected) {
		t.Errorf("Expected %v, got %v", expected, runner.calls[0])
	}

	runner.calls = nil
	if _, err := ops.RunRaw(ctx, NewCommand("").AddParameter("dummy")); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("Expected ErrMissingArgument for empty path, got %v", err)
	}
	if _, err := ops.RunRaw(ctx, NewCommand(convertPath)); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("Expected ErrMissingArgument for empty parameters, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Error("Expected no process to be spawned")
	}
}

func TestOperations_PropagatesRunnerErrors(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "src.png", 10, 10)

	runner := newMockRunnerWithError(ErrProcessFailure)
	_, err := NewOperations(runner).StripMetadata(context.Background(), "/path/to/imagemagick/convert", src, filepath.Join(dir, "d.png"))
	if !errors.Is(err, ErrProcessFailure) {
		t.Errorf("Expected ErrProcessFailure, got %v", err)
	}
	if len(runner.calls) != 1 {
		t.Errorf("Expected exactly one spawn attempt, got %d", len(runner.calls))
	}
}
