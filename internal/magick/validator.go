package magick

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jo-hoe/gomagick/internal/imagesize"
)

var sizeSpecPattern = regexp.MustCompile(`^[0-9]+x[0-9]+$`)

// ValidateCommandPath fails when the executable path is empty
func ValidateCommandPath(path string) error {
	if isBlank(path) {
		return fmt.Errorf("%w: commandPath may not be specified", ErrMissingArgument)
	}
	return nil
}

// ValidateSrcFile fails when src is empty or does not name an existing file.
// Absence of the reference is checked before existence on disk.
func ValidateSrcFile(src string) error {
	if isBlank(src) {
		return fmt.Errorf("%w: src may not be specified", ErrMissingArgument)
	}
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: src file %s", ErrNotFound, src)
		}
		return fmt.Errorf("%w: src file %s: %v", ErrNotFound, src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: src %s is a directory", ErrNotFound, src)
	}
	return nil
}

// ValidateDestFile fails when dest is empty. The file itself is created by the external tool.
func ValidateDestFile(dest string) error {
	if isBlank(dest) {
		return fmt.Errorf("%w: dest may not be specified", ErrMissingArgument)
	}
	return nil
}

// ValidateSize checks a "WxH" token; label only names the value in the error message
func ValidateSize(spec, label string) error {
	if spec == "" {
		return fmt.Errorf("%w: %s may not be specified", ErrMissingArgument, label)
	}
	if !sizeSpecPattern.MatchString(spec) {
		return fmt.Errorf("%w: %s must match %s, got %q", ErrMalformedSpec, label, sizeSpecPattern, spec)
	}
	return nil
}

// ValidatePixel fails for non-positive pixel values
func ValidatePixel(pixel int) error {
	if pixel <= 0 {
		return fmt.Errorf("%w: pixel must be 1 or greater, got %d", ErrOutOfRange, pixel)
	}
	return nil
}

// ValidatePixelFits fails when scaling src so one side becomes pixel would overflow
// the derived side. Run it after ValidatePixel.
func ValidatePixelFits(src imagesize.Size, pixel int) error {
	if longest := max(src.Width, src.Height); longest > 0 && pixel > math.MaxInt/longest {
		return fmt.Errorf("%w: pixel %d is too large for a %s source", ErrOutOfRange, pixel, src)
	}
	return nil
}

// ValidateSide fails when no side was given
func ValidateSide(side imagesize.Side) error {
	if side == nil {
		return fmt.Errorf("%w: side may not be specified", ErrMissingArgument)
	}
	return nil
}

// ValidateSrcFileList fails for an empty list, then validates every element in order
func ValidateSrcFileList(srcs []string) error {
	if len(srcs) == 0 {
		return fmt.Errorf("%w: srcFiles may not be specified", ErrMissingArgument)
	}
	for i, src := range srcs {
		if err := ValidateSrcFile(src); err != nil {
			return fmt.Errorf("srcFiles[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidateTileCountMatch fails when columns*rows of tile differs from the number of files.
// tile must already have passed ValidateSize.
func ValidateTileCountMatch(srcs []string, tile string) error {
	columns, rows, err := parseSizeSpec(tile)
	if err != nil {
		return err
	}
	if rows != 0 && columns > math.MaxInt/rows {
		return fmt.Errorf("%w: tile %s holds more images than can be counted", ErrMalformedSpec, tile)
	}
	if columns*rows != len(srcs) {
		return fmt.Errorf("%w: tile %s holds %d images but %d srcFiles were given",
			ErrCountMismatch, tile, columns*rows, len(srcs))
	}
	return nil
}

func parseSizeSpec(spec string) (int, int, error) {
	if !sizeSpecPattern.MatchString(spec) {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedSpec, spec)
	}
	left, right, _ := strings.Cut(spec, "x")
	first, err := strconv.Atoi(left)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrMalformedSpec, spec, err)
	}
	second, err := strconv.Atoi(right)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrMalformedSpec, spec, err)
	}
	return first, second, nil
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
