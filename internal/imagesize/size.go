package imagesize

import (
	"fmt"
	"strings"
)

// Size is an immutable width/height pair in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// New creates a Size from concrete dimensions. The values are not validated.
func New(width, height int) Size {
	return Size{Width: width, Height: height}
}

// String renders the size as an ImageMagick geometry token, e.g. "200x100"
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Side selects which dimension of a target size is held fixed.
// The only implementations are Portrait and Landscape.
type Side interface {
	fmt.Stringer
	measure(src Size, pixel int) Size
}

type portrait struct{}

type landscape struct{}

var (
	// Portrait fixes the height and derives the width
	Portrait Side = portrait{}
	// Landscape fixes the width and derives the height
	Landscape Side = landscape{}
)

func (portrait) String() string { return "portrait" }

func (portrait) measure(src Size, pixel int) Size {
	return Size{Width: (src.Width * pixel) / src.Height, Height: pixel}
}

func (landscape) String() string { return "landscape" }

func (landscape) measure(src Size, pixel int) Size {
	return Size{Width: pixel, Height: (src.Height * pixel) / src.Width}
}

// ParseSide converts "portrait" or "landscape" into a Side
func ParseSide(value string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	default:
		return nil, fmt.Errorf("invalid side: %q (must be 'portrait' or 'landscape')", value)
	}
}
