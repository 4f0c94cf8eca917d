package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/yunusemre274/World-Car/internal/delivery/http/response"
	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/search"
	"github.com/yunusemre274/World-Car/internal/infra/routing/spatial"
	"github.com/yunusemre274/World-Car/internal/usecase"
)

// RouteHandlerParams holds dependencies for RouteHandler, injected by Fx.
type RouteHandlerParams struct {
	fx.In

	RoutingUC usecase.RoutingUsecase
	Logger    *slog.Logger
}

// RouteHandler holds dependencies for routing-related handlers
type RouteHandler struct {
	routingUC usecase.RoutingUsecase
	logger    *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		routingUC: params.RoutingUC,
		logger:    params.Logger,
	}
}

// RouteRequest represents the query parameters for a route computation
type RouteRequest struct {
	StartLat        float64 `query:"start_lat" validate:"min=-90,max=90"`
	StartLon        float64 `query:"start_lon" validate:"min=-180,max=180"`
	EndLat          float64 `query:"end_lat" validate:"min=-90,max=90"`
	EndLon          float64 `query:"end_lon" validate:"min=-180,max=180"`
	Algorithm       string  `query:"algorithm" validate:"omitempty,oneof=dijkstra astar weighted-astar"`
	HeuristicWeight float64 `query:"heuristic_weight" validate:"omitempty,min=0"`
}

// ComputeRoute handles GET /route
func (h *RouteHandler) ComputeRoute(c echo.Context) error {
	var req RouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route parameters")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	result, err := h.routingUC.ComputeRoute(
		c.Request().Context(),
		usecase.Coordinate{Lat: req.StartLat, Lng: req.StartLon},
		usecase.Coordinate{Lat: req.EndLat, Lng: req.EndLon},
		usecase.RouteOptions{Algorithm: req.Algorithm, HeuristicWeight: req.HeuristicWeight},
	)
	if err != nil {
		return h.handleRoutingError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Route computed successfully")
}

// CompareAlgorithms handles GET /compare
func (h *RouteHandler) CompareAlgorithms(c echo.Context) error {
	var req RouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route parameters")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	result, err := h.routingUC.CompareAlgorithms(
		c.Request().Context(),
		usecase.Coordinate{Lat: req.StartLat, Lng: req.StartLon},
		usecase.Coordinate{Lat: req.EndLat, Lng: req.EndLon},
	)
	if err != nil {
		return h.handleRoutingError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Comparison completed")
}

// GraphStats handles GET /stats
func (h *RouteHandler) GraphStats(c echo.Context) error {
	if !h.routingUC.IsReady() {
		return response.ServiceUnavailable(c, "ENGINE_NOT_READY", "Road network is not loaded")
	}

	return response.Success(c, http.StatusOK, h.routingUC.GraphStats(), "Graph statistics")
}

// handleRoutingError maps usecase and search errors to API error codes.
func (h *RouteHandler) handleRoutingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidCoordinates):
		return response.BadRequest(c, "INVALID_COORDINATES", "Coordinates out of range")
	case errors.Is(err, usecase.ErrUnknownAlgorithm):
		return response.BadRequest(c, "UNKNOWN_ALGORITHM", err.Error())
	case errors.Is(err, usecase.ErrNotReady):
		return response.ServiceUnavailable(c, "ENGINE_NOT_READY", "Road network is not loaded")
	case errors.Is(err, spatial.ErrSnapDistanceExceeded), errors.Is(err, spatial.ErrEmptyIndex):
		return response.UnprocessableEntity(c, "SNAP_FAILED", "No road found near the given coordinates")
	case errors.Is(err, search.ErrNodeNotFound):
		return response.NotFound(c, "NODE_NOT_FOUND", "Snapped node missing from graph")
	case errors.Is(err, search.ErrNoPathExists):
		return response.NotFound(c, "NO_PATH_EXISTS", "No route connects the given points")
	default:
		h.logger.Error("route computation failed", slog.Any("error", err))

		return response.InternalServerError(c, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}
