package imagesize

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// svgSniffLen bounds how much of a file is inspected for an <svg tag
const svgSniffLen = 1024

// Probe reads the pixel dimensions of the image stored at path.
// Only the header is decoded for raster formats; SVG files are sized from their viewBox.
func Probe(path string) (Size, error) {
	file, err := os.Open(path)
	if err != nil {
		return Size{}, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			slog.Error("failed to close image file", "path", path, "error", cerr)
		}
	}()

	reader := bufio.NewReader(file)
	head, _ := reader.Peek(svgSniffLen)
	if isSVGData(head) {
		return probeSVG(path, reader)
	}

	config, format, err := image.DecodeConfig(reader)
	if err != nil {
		return Size{}, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	if config.Width <= 0 || config.Height <= 0 {
		return Size{}, fmt.Errorf("image %s has no pixels (%dx%d)", path, config.Width, config.Height)
	}

	slog.Debug("probed image size",
		"path", path,
		"format", format,
		"width", config.Width,
		"height", config.Height)

	return Size{Width: config.Width, Height: config.Height}, nil
}

func probeSVG(path string, reader io.Reader) (Size, error) {
	icon, err := oksvg.ReadIconStream(reader, oksvg.IgnoreErrorMode)
	if err != nil {
		return Size{}, fmt.Errorf("failed to decode svg %s: %w", path, err)
	}

	width := int(math.Ceil(icon.ViewBox.W))
	height := int(math.Ceil(icon.ViewBox.H))
	if width <= 0 || height <= 0 {
		return Size{}, fmt.Errorf("failed to decode svg %s: missing viewBox dimensions", path)
	}

	slog.Debug("probed svg size", "path", path, "width", width, "height", height)
	return Size{Width: width, Height: height}, nil
}

// isSVGData performs a lightweight detection of SVG content from raw bytes
func isSVGData(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false
	}
	return bytes.Contains(bytes.ToLower(trimmed), []byte("<svg"))
}
