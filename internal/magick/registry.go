package magick

import (
	"context"
	"fmt"
	"sort"
)

// Tools holds the executable paths of the ImageMagick programs
type Tools struct {
	Convert string
	Montage string
}

// Path resolves a tool name ("convert" or "montage") to its configured executable
func (t Tools) Path(tool string) (string, error) {
	switch tool {
	case "convert":
		return t.Convert, nil
	case "montage":
		return t.Montage, nil
	default:
		return "", fmt.Errorf("%w: unknown tool %q (must be 'convert' or 'montage')", ErrMalformedSpec, tool)
	}
}

// Operation is a named invocation built from configuration parameters
type Operation interface {
	Name() string
	Execute(ctx context.Context, ops *Operations, tools Tools) (Result, error)
}

// OperationFactory is a function type that creates an operation from configuration parameters
type OperationFactory func(params map[string]any) (Operation, error)

// OperationRegistry manages the registration and creation of named operations
type OperationRegistry struct {
	factories map[string]OperationFactory
}

// NewOperationRegistry creates a new, empty operation registry
func NewOperationRegistry() *OperationRegistry {
	return &OperationRegistry{
		factories: make(map[string]OperationFactory),
	}
}

// Register adds an operation factory to the registry
func (r *OperationRegistry) Register(name string, factory OperationFactory) error {
	if name == "" {
		return fmt.Errorf("operation name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("operation factory cannot be nil")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("operation %s is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Create instantiates an operation by name with the given parameters
func (r *OperationRegistry) Create(name string, params map[string]any) (Operation, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown operation: %s", name)
	}

	operation, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation %s: %w", name, err)
	}

	return operation, nil
}

// IsRegistered checks if an operation with the given name is registered
func (r *OperationRegistry) IsRegistered(name string) bool {
	_, exists := r.factories[name]
	return exists
}

// GetRegisteredNames returns the sorted names of all registered operations
func (r *OperationRegistry) GetRegisteredNames() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry holds the built-in operations
var DefaultRegistry = NewOperationRegistry()
