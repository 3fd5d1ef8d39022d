package magick

import (
	"context"
	"fmt"
)

// MontageParams represents typed parameters for the montage operation
type MontageParams struct {
	SrcFiles []string
	Tile     string
	Geometry string
	Dest     string
}

// NewMontageParamsFromMap creates MontageParams from a generic map
func NewMontageParamsFromMap(params map[string]any) (*MontageParams, error) {
	srcFiles, err := GetStringSliceParam(params, "srcFiles")
	if err != nil {
		return nil, err
	}

	return &MontageParams{
		SrcFiles: srcFiles,
		Tile:     GetStringParam(params, "tile", ""),
		Geometry: GetStringParam(params, "geometry", ""),
		Dest:     GetStringParam(params, "dest", ""),
	}, nil
}

// MontageOperation composes several sources into a grid with the montage tool
type MontageOperation struct {
	params *MontageParams
}

// NewMontageOperation creates a montage operation from configuration parameters
func NewMontageOperation(params map[string]any) (Operation, error) {
	typedParams, err := NewMontageParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &MontageOperation{params: typedParams}, nil
}

// Name returns the operation name
func (o *MontageOperation) Name() string {
	return "montage"
}

// Execute composes the montage
func (o *MontageOperation) Execute(ctx context.Context, ops *Operations, tools Tools) (Result, error) {
	p := o.params
	return ops.CreateMontage(ctx, tools.Montage, p.SrcFiles, p.Tile, p.Geometry, p.Dest)
}

// GetParams returns the typed parameters
func (o *MontageOperation) GetParams() *MontageParams {
	return o.params
}

func init() {
	if err := DefaultRegistry.Register("montage", NewMontageOperation); err != nil {
		panic(fmt.Sprintf("failed to register montage operation: %v", err))
	}
}
