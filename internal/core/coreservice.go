package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/jo-hoe/gomagick/internal/database"
	"github.com/jo-hoe/gomagick/internal/imagesize"
	"github.com/jo-hoe/gomagick/internal/magick"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrPresetNotFound   = errors.New("preset not found")
)

type CoreService struct {
	config          *ServiceConfig
	runner          magick.Runner
	registry        *magick.OperationRegistry
	databaseService database.DatabaseService
	presets         map[string]PresetConfig
}

// NewCoreService wires the operations to runner and opens the invocation journal
func NewCoreService(ctx context.Context, config *ServiceConfig, runner magick.Runner) (*CoreService, error) {
	databaseService, err := database.NewDatabase(ctx, config.Database.Type, config.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("database initialized successfully", "type", config.Database.Type)

	presets := make(map[string]PresetConfig, len(config.Presets))
	for _, preset := range config.Presets {
		presets[preset.Name] = preset
	}

	return &CoreService{
		config:          config,
		runner:          runner,
		registry:        magick.DefaultRegistry,
		databaseService: databaseService,
		presets:         presets,
	}, nil
}

// Execute creates the named operation from params, runs it and journals the outcome.
// The invocation is returned whenever the operation was attempted, also on failure.
func (service *CoreService) Execute(ctx context.Context, name string, params map[string]any) (*database.Invocation, error) {
	if !service.registry.IsRegistered(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}

	operation, err := service.registry.Create(name, params)
	if err != nil {
		return nil, err
	}

	recorder := &recordingRunner{runner: service.runner}
	start := time.Now()
	result, runErr := operation.Execute(ctx, magick.NewOperations(recorder), service.config.Tools())

	invocation := &database.Invocation{
		Operation:  operation.Name(),
		Args:       recorder.args,
		ExitCode:   -1,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if recorder.args != nil {
		invocation.ExitCode = result.ExitCode
	}
	if invocation.Args == nil {
		invocation.Args = []string{}
	}
	if runErr != nil {
		invocation.ErrorKind = magick.KindOf(runErr)
		invocation.ErrorMessage = runErr.Error()
		slog.Warn("operation failed",
			"operation", operation.Name(),
			"error_kind", invocation.ErrorKind,
			"error", runErr)
	}

	// journal failures must not hide the outcome of the operation itself
	if _, err := service.databaseService.CreateInvocation(context.WithoutCancel(ctx), invocation); err != nil {
		slog.Error("failed to journal invocation", "operation", operation.Name(), "error", err)
	}

	return invocation, runErr
}

// ExecutePreset runs a configured preset; request params override preset params
func (service *CoreService) ExecutePreset(ctx context.Context, presetName string, params map[string]any) (*database.Invocation, error) {
	preset, ok := service.presets[presetName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, presetName)
	}

	slog.Debug("executing preset", "preset", presetName, "operation", preset.Operation)
	return service.Execute(ctx, preset.Operation, magick.MergeParams(preset.Params, params))
}

// Presets returns the configured preset names in configuration order
func (service *CoreService) Presets() []string {
	names := make([]string, 0, len(service.config.Presets))
	for _, preset := range service.config.Presets {
		names = append(names, preset.Name)
	}
	return names
}

// ProbeSize returns the pixel size of an existing source image
func (service *CoreService) ProbeSize(path string) (imagesize.Size, error) {
	if err := magick.ValidateSrcFile(path); err != nil {
		return imagesize.Size{}, err
	}
	return imagesize.Probe(path)
}

func (service *CoreService) GetInvocations(ctx context.Context, limit int) ([]*database.Invocation, error) {
	return service.databaseService.GetInvocations(ctx, limit)
}

func (service *CoreService) GetInvocationByID(ctx context.Context, id string) (*database.Invocation, error) {
	return service.databaseService.GetInvocationByID(ctx, id)
}

func (service *CoreService) DeleteInvocation(ctx context.Context, id string) error {
	return service.databaseService.DeleteInvocation(ctx, id)
}

func (service *CoreService) Close() error {
	return service.databaseService.Close()
}

// recordingRunner remembers the argument vector handed to the wrapped runner.
// One instance serves exactly one operation.
type recordingRunner struct {
	runner magick.Runner
	args   []string
}

func (r *recordingRunner) Run(ctx context.Context, args []string) (magick.Result, error) {
	r.args = slices.Clone(args)
	return r.runner.Run(ctx, args)
}
