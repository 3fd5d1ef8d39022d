package magick

import (
	"context"
	"fmt"

	"github.com/jo-hoe/gomagick/internal/imagesize"
)

// ResizeParams represents typed parameters for the resize operation
type ResizeParams struct {
	Src   string
	Dest  string
	Side  imagesize.Side
	Pixel int
}

// NewResizeParamsFromMap creates ResizeParams from a generic map.
// A missing side stays nil and is reported by validation; an unknown side is rejected here.
func NewResizeParamsFromMap(params map[string]any) (*ResizeParams, error) {
	var side imagesize.Side
	if raw := GetStringParam(params, "side", ""); raw != "" {
		parsed, err := imagesize.ParseSide(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSpec, err)
		}
		side = parsed
	}

	return &ResizeParams{
		Src:   GetStringParam(params, "src", ""),
		Dest:  GetStringParam(params, "dest", ""),
		Side:  side,
		Pixel: GetIntParam(params, "pixel", 0),
	}, nil
}

// ResizeOperation keeps the aspect ratio while fixing one side
type ResizeOperation struct {
	params *ResizeParams
}

// NewResizeOperation creates a resize operation from configuration parameters
func NewResizeOperation(params map[string]any) (Operation, error) {
	typedParams, err := NewResizeParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &ResizeOperation{params: typedParams}, nil
}

// Name returns the operation name
func (o *ResizeOperation) Name() string {
	return "resize"
}

// Execute resizes with the convert tool
func (o *ResizeOperation) Execute(ctx context.Context, ops *Operations, tools Tools) (Result, error) {
	return ops.Resize(ctx, tools.Convert, o.params.Src, o.params.Dest, o.params.Side, o.params.Pixel)
}

// GetParams returns the typed parameters
func (o *ResizeOperation) GetParams() *ResizeParams {
	return o.params
}

func init() {
	if err := DefaultRegistry.Register("resize", NewResizeOperation); err != nil {
		panic(fmt.Sprintf("failed to register resize operation: %v", err))
	}
}
