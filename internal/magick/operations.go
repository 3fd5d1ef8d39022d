package magick

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jo-hoe/gomagick/internal/imagesize"
)

// Operations builds validated ImageMagick invocations and hands them to a Runner.
// Every method validates all inputs before anything is spawned.
type Operations struct {
	runner Runner
}

// NewOperations creates the operation set on top of runner
func NewOperations(runner Runner) *Operations {
	return &Operations{runner: runner}
}

// StripMetadata removes profiles and comments: convert src -strip dest
func (o *Operations) StripMetadata(ctx context.Context, commandPath, src, dest string) (Result, error) {
	if err := firstError(
		func() error { return ValidateCommandPath(commandPath) },
		func() error { return ValidateSrcFile(src) },
		func() error { return ValidateDestFile(dest) },
	); err != nil {
		return Result{}, err
	}

	return o.run(ctx, "StripMetadata", []string{commandPath, src, "-strip", dest})
}

// CreateThumbnail fits src into size keeping its proportion: convert -thumbnail size src dest
func (o *Operations) CreateThumbnail(ctx context.Context, commandPath, src, dest, size string) (Result, error) {
	if err := firstError(
		func() error { return ValidateCommandPath(commandPath) },
		func() error { return ValidateSrcFile(src) },
		func() error { return ValidateDestFile(dest) },
		func() error { return ValidateSize(size, "size") },
	); err != nil {
		return Result{}, err
	}

	return o.run(ctx, "CreateThumbnail", []string{commandPath, "-thumbnail", size, src, dest})
}

// Resize scales src so that the dimension chosen by side becomes pixel
func (o *Operations) Resize(ctx context.Context, commandPath, src, dest string, side imagesize.Side, pixel int) (Result, error) {
	if err := firstError(
		func() error { return ValidateCommandPath(commandPath) },
		func() error { return ValidateSrcFile(src) },
		func() error { return ValidateDestFile(dest) },
		func() error { return ValidateSide(side) },
		func() error { return ValidatePixel(pixel) },
	); err != nil {
		return Result{}, err
	}

	source, err := imagesize.Probe(src)
	if err != nil {
		return Result{}, fmt.Errorf("failed to measure %s: %w", src, err)
	}
	if err := ValidatePixelFits(source, pixel); err != nil {
		return Result{}, err
	}
	target := imagesize.Measure(source, side, pixel)

	return o.CreateThumbnail(ctx, commandPath, src, dest, target.String())
}

// CreateMontage tiles srcs into one image: montage -tile tile -geometry geometry src... dest
func (o *Operations) CreateMontage(ctx context.Context, commandPath string, srcs []string, tile, geometry, dest string) (Result, error) {
	if err := firstError(
		func() error { return ValidateCommandPath(commandPath) },
		func() error { return ValidateSrcFileList(srcs) },
		func() error { return ValidateDestFile(dest) },
		func() error { return ValidateSize(tile, "tile") },
		func() error { return ValidateSize(geometry, "geometry") },
		func() error { return ValidateTileCountMatch(srcs, tile) },
	); err != nil {
		return Result{}, err
	}

	args := make([]string, 0, len(srcs)+6)
	args = append(args, commandPath, "-tile", tile, "-geometry", geometry)
	args = append(args, srcs...)
	args = append(args, dest)

	return o.run(ctx, "CreateMontage", args)
}

// RunRaw validates command and runs its argument vector verbatim
func (o *Operations) RunRaw(ctx context.Context, command Command) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}

	return o.run(ctx, "RunRaw", command.Args())
}

func (o *Operations) run(ctx context.Context, operation string, args []string) (Result, error) {
	slog.Debug("invoking external command", "operation", operation, "args", args)

	result, err := o.runner.Run(ctx, args)
	if err != nil {
		return result, fmt.Errorf("%s failed: %w", operation, err)
	}
	return result, nil
}

// firstError runs the guards in order and returns the first failure
func firstError(guards ...func() error) error {
	for _, guard := range guards {
		if err := guard(); err != nil {
			return err
		}
	}
	return nil
}
