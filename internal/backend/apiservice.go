package backend

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jo-hoe/gomagick/internal/core"
	"github.com/jo-hoe/gomagick/internal/database"
	"github.com/jo-hoe/gomagick/internal/imagesize"
	"github.com/jo-hoe/gomagick/internal/magick"
	"github.com/labstack/echo/v4"
)

const defaultInvocationLimit = 50

type APIService struct {
	coreService *core.CoreService
}

// ExecuteRequest names an operation or preset; Params are the operation parameters
type ExecuteRequest struct {
	Name   string         `param:"name" json:"-" validate:"required"`
	Params map[string]any `json:"params"`
}

type InvocationListRequest struct {
	Limit int `query:"limit" validate:"gte=0,lte=1000"`
}

type InvocationRequest struct {
	ID string `param:"id" validate:"required"`
}

type SizeRequest struct {
	Path  string `query:"path" validate:"required"`
	Side  string `query:"side"`
	Pixel int    `query:"pixel" validate:"omitempty,gt=0"`
}

type SizeResponse struct {
	Source imagesize.Size  `json:"source"`
	Target *imagesize.Size `json:"target,omitempty"`
}

type OperationsResponse struct {
	Operations []string `json:"operations"`
	Presets    []string `json:"presets"`
}

type ErrorResponse struct {
	Error      string               `json:"error"`
	Kind       string               `json:"kind,omitempty"`
	Invocation *database.Invocation `json:"invocation,omitempty"`
}

func NewAPIService(coreService *core.CoreService) *APIService {
	return &APIService{
		coreService: coreService,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	e.GET("/probe", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Service is running")
	})

	api := e.Group("/api")
	api.GET("/operations", s.listOperationsHandler)
	api.POST("/operations/:name", s.executeOperationHandler)
	api.POST("/presets/:name", s.executePresetHandler)
	api.GET("/invocations", s.listInvocationsHandler)
	api.GET("/invocations/:id", s.getInvocationHandler)
	api.DELETE("/invocations/:id", s.deleteInvocationHandler)
	api.GET("/size", s.sizeHandler)
}

func (s *APIService) listOperationsHandler(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, OperationsResponse{
		Operations: magick.DefaultRegistry.GetRegisteredNames(),
		Presets:    s.coreService.Presets(),
	})
}

func (s *APIService) executeOperationHandler(ctx echo.Context) error {
	request, err := bindAndValidate[ExecuteRequest](ctx)
	if err != nil {
		return err
	}

	invocation, err := s.coreService.Execute(ctx.Request().Context(), request.Name, request.Params)
	return respondInvocation(ctx, request.Name, invocation, err)
}

func (s *APIService) executePresetHandler(ctx echo.Context) error {
	request, err := bindAndValidate[ExecuteRequest](ctx)
	if err != nil {
		return err
	}

	invocation, err := s.coreService.ExecutePreset(ctx.Request().Context(), request.Name, request.Params)
	return respondInvocation(ctx, request.Name, invocation, err)
}

func (s *APIService) listInvocationsHandler(ctx echo.Context) error {
	request, err := bindAndValidate[InvocationListRequest](ctx)
	if err != nil {
		return err
	}
	limit := request.Limit
	if limit == 0 {
		limit = defaultInvocationLimit
	}

	invocations, err := s.coreService.GetInvocations(ctx.Request().Context(), limit)
	if err != nil {
		slog.Error("listInvocationsHandler: failed to list invocations",
			"status", http.StatusInternalServerError, "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list invocations"})
	}
	if invocations == nil {
		invocations = []*database.Invocation{}
	}
	return ctx.JSON(http.StatusOK, invocations)
}

func (s *APIService) getInvocationHandler(ctx echo.Context) error {
	request, err := bindAndValidate[InvocationRequest](ctx)
	if err != nil {
		return err
	}

	invocation, err := s.coreService.GetInvocationByID(ctx.Request().Context(), request.ID)
	if err != nil {
		slog.Error("getInvocationHandler: failed to load invocation",
			"status", http.StatusInternalServerError, "invocation_id", request.ID, "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load invocation"})
	}
	if invocation == nil {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "invocation not found"})
	}
	return ctx.JSON(http.StatusOK, invocation)
}

func (s *APIService) deleteInvocationHandler(ctx echo.Context) error {
	request, err := bindAndValidate[InvocationRequest](ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	invocation, err := s.coreService.GetInvocationByID(reqCtx, request.ID)
	if err != nil {
		slog.Error("deleteInvocationHandler: failed to load invocation",
			"status", http.StatusInternalServerError, "invocation_id", request.ID, "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load invocation"})
	}
	if invocation == nil {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "invocation not found"})
	}

	if err := s.coreService.DeleteInvocation(reqCtx, request.ID); err != nil {
		slog.Error("deleteInvocationHandler: failed to delete invocation",
			"status", http.StatusInternalServerError, "invocation_id", request.ID, "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete invocation"})
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *APIService) sizeHandler(ctx echo.Context) error {
	request, err := bindAndValidate[SizeRequest](ctx)
	if err != nil {
		return err
	}

	source, err := s.coreService.ProbeSize(request.Path)
	if err != nil {
		return respondError(ctx, err, nil)
	}
	response := SizeResponse{Source: source}

	if request.Side != "" {
		side, err := imagesize.ParseSide(request.Side)
		if err != nil {
			return respondError(ctx, fmt.Errorf("%w: %v", magick.ErrMalformedSpec, err), nil)
		}
		if err := firstError(
			func() error { return magick.ValidatePixel(request.Pixel) },
			func() error { return magick.ValidatePixelFits(source, request.Pixel) },
		); err != nil {
			return respondError(ctx, err, nil)
		}
		target := imagesize.Measure(source, side, request.Pixel)
		response.Target = &target
	}

	return ctx.JSON(http.StatusOK, response)
}

func firstError(guards ...func() error) error {
	for _, guard := range guards {
		if err := guard(); err != nil {
			return err
		}
	}
	return nil
}

func bindAndValidate[T any](ctx echo.Context) (*T, error) {
	request := new(T)
	if err := ctx.Bind(request); err != nil {
		return nil, err
	}
	if err := ctx.Validate(request); err != nil {
		return nil, err
	}
	return request, nil
}

// respondInvocation answers 200 for every invocation that ran, whatever its exit code
func respondInvocation(ctx echo.Context, name string, invocation *database.Invocation, err error) error {
	if err != nil {
		slog.Warn("operation request failed", "name", name, "error", err)
		return respondError(ctx, err, invocation)
	}
	return ctx.JSON(http.StatusOK, invocation)
}

func respondError(ctx echo.Context, err error, invocation *database.Invocation) error {
	return ctx.JSON(statusFor(err), ErrorResponse{
		Error:      err.Error(),
		Kind:       magick.KindOf(err),
		Invocation: invocation,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownOperation),
		errors.Is(err, core.ErrPresetNotFound),
		errors.Is(err, magick.ErrNotFound):
		return http.StatusNotFound
	case magick.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, magick.ErrProcessInterrupted):
		return http.StatusServiceUnavailable
	case errors.Is(err, magick.ErrProcessFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
