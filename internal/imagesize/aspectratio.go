package imagesize

import "log/slog"

// Measure computes a target size that keeps the proportion of src while the
// dimension selected by side is set to pixel. The derived dimension is
// truncated toward zero, never rounded.
func Measure(src Size, side Side, pixel int) Size {
	target := side.measure(src, pixel)

	slog.Debug("measured target size",
		"source_width", src.Width,
		"source_height", src.Height,
		"fixed_side", side.String(),
		"fixed_pixel", pixel,
		"target_width", target.Width,
		"target_height", target.Height)

	return target
}

// MeasureFile probes the image at path and measures a target size for it
func MeasureFile(path string, side Side, pixel int) (Size, error) {
	src, err := Probe(path)
	if err != nil {
		return Size{}, err
	}
	return Measure(src, side, pixel), nil
}
