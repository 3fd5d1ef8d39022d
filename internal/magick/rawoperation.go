package magick

import (
	"context"
	"fmt"
)

// RawOperation passes caller supplied parameters to one of the configured tools.
// The executable is always looked up by tool name, never taken from the request.
type RawOperation struct {
	tool       string
	parameters []string
}

// NewRawOperation creates a raw operation from configuration parameters
func NewRawOperation(params map[string]any) (Operation, error) {
	parameters, err := GetStringSliceParam(params, "parameters")
	if err != nil {
		return nil, err
	}

	return &RawOperation{
		tool:       GetStringParam(params, "tool", "convert"),
		parameters: parameters,
	}, nil
}

// Name returns the operation name
func (o *RawOperation) Name() string {
	return "raw"
}

// Execute builds a Command for the selected tool and runs it
func (o *RawOperation) Execute(ctx context.Context, ops *Operations, tools Tools) (Result, error) {
	path, err := tools.Path(o.tool)
	if err != nil {
		return Result{}, err
	}

	command := NewCommand(path)
	for _, p := range o.parameters {
		command = command.AddParameter(p)
	}
	return ops.RunRaw(ctx, command)
}

func init() {
	if err := DefaultRegistry.Register("raw", NewRawOperation); err != nil {
		panic(fmt.Sprintf("failed to register raw operation: %v", err))
	}
}
