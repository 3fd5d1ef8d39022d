package magick

import (
	"context"
	"fmt"
)

// ThumbnailParams represents typed parameters for the thumbnail operation
type ThumbnailParams struct {
	Src  string
	Dest string
	Size string
}

// NewThumbnailParamsFromMap creates ThumbnailParams from a generic map
func NewThumbnailParamsFromMap(params map[string]any) *ThumbnailParams {
	return &ThumbnailParams{
		Src:  GetStringParam(params, "src", ""),
		Dest: GetStringParam(params, "dest", ""),
		Size: GetStringParam(params, "size", ""),
	}
}

// ThumbnailOperation runs convert -thumbnail
type ThumbnailOperation struct {
	params *ThumbnailParams
}

// NewThumbnailOperation creates a thumbnail operation from configuration parameters
func NewThumbnailOperation(params map[string]any) (Operation, error) {
	return &ThumbnailOperation{params: NewThumbnailParamsFromMap(params)}, nil
}

// Name returns the operation name
func (o *ThumbnailOperation) Name() string {
	return "thumbnail"
}

// Execute creates the thumbnail with the convert tool
func (o *ThumbnailOperation) Execute(ctx context.Context, ops *Operations, tools Tools) (Result, error) {
	return ops.CreateThumbnail(ctx, tools.Convert, o.params.Src, o.params.Dest, o.params.Size)
}

// GetParams returns the typed parameters
func (o *ThumbnailOperation) GetParams() *ThumbnailParams {
	return o.params
}

func init() {
	if err := DefaultRegistry.Register("thumbnail", NewThumbnailOperation); err != nil {
		panic(fmt.Sprintf("failed to register thumbnail operation: %v", err))
	}
}
