package magick

import (
	"context"
	"fmt"
)

// StripParams represents typed parameters for the strip operation
type StripParams struct {
	Src  string
	Dest string
}

// StripOperation runs convert -strip
type StripOperation struct {
	params *StripParams
}

// NewStripOperation creates a metadata stripping operation from configuration parameters
func NewStripOperation(params map[string]any) (Operation, error) {
	return &StripOperation{
		params: &StripParams{
			Src:  GetStringParam(params, "src", ""),
			Dest: GetStringParam(params, "dest", ""),
		},
	}, nil
}

// Name returns the operation name
func (o *StripOperation) Name() string {
	return "strip"
}

// Execute strips metadata with the convert tool
func (o *StripOperation) Execute(ctx context.Context, ops *Operations, tools Tools) (Result, error) {
	return ops.StripMetadata(ctx, tools.Convert, o.params.Src, o.params.Dest)
}

func init() {
	if err := DefaultRegistry.Register("strip", NewStripOperation); err != nil {
		panic(fmt.Sprintf("failed to register strip operation: %v", err))
	}
}
