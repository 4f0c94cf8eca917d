package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/yunusemre274/World-Car/config"
	"github.com/yunusemre274/World-Car/internal/delivery/http/response"
	"github.com/yunusemre274/World-Car/internal/usecase"
)

// SystemHandlerParams holds dependencies for SystemHandler, injected by Fx.
type SystemHandlerParams struct {
	fx.In

	Config    *config.Config
	RoutingUC usecase.RoutingUsecase
}

// SystemHandler serves service info and health endpoints.
type SystemHandler struct {
	cfg       *config.Config
	routingUC usecase.RoutingUsecase
}

// NewSystemHandler is the constructor for SystemHandler.
func NewSystemHandler(params SystemHandlerParams) *SystemHandler {
	return &SystemHandler{
		cfg:       params.Config,
		routingUC: params.RoutingUC,
	}
}

// HealthCheck handles GET /health.
func (h *SystemHandler) HealthCheck(c echo.Context) error {
	status := "ok"
	statusCode := http.StatusOK
	if !h.routingUC.IsReady() {
		status = "loading"
		statusCode = http.StatusServiceUnavailable
	}

	return response.Success(c, statusCode, map[string]any{
		"status": status,
		"ready":  h.routingUC.IsReady(),
	}, "Service is healthy")
}

// Info handles GET / with service metadata and usage hints.
func (h *SystemHandler) Info(c echo.Context) error {
	data := map[string]any{
		"service": h.cfg.Env.ServiceName,
		"endpoints": map[string]string{
			"route":   "/route?start_lat=40.9856&start_lon=29.0298&end_lat=40.9638&end_lon=29.0408",
			"compare": "/compare?start_lat=40.9856&start_lon=29.0298&end_lat=40.9638&end_lon=29.0408",
			"stats":   "/stats",
			"health":  "/health",
		},
	}
	if h.routingUC.IsReady() {
		stats := h.routingUC.GraphStats()
		data["graph"] = map[string]any{
			"nodes": stats.Nodes,
			"edges": stats.Edges,
		}
	}

	return response.Success(c, http.StatusOK, data, "")
}
