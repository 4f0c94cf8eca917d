// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/yunusemre274/World-Car/internal/delivery/http/router/handler"
	"github.com/yunusemre274/World-Car/internal/delivery/middleware"
)

type RouterParams struct {
	fx.In

	RouteHandler  *handler.RouteHandler
	SystemHandler *handler.SystemHandler
	RequestID     *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	routeHandler  *handler.RouteHandler
	systemHandler *handler.SystemHandler
	requestID     *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		routeHandler:  params.RouteHandler,
		systemHandler: params.SystemHandler,
		requestID:     params.RequestID,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestID.Process)

	e.GET("/health", r.systemHandler.HealthCheck)
	e.GET("/", r.systemHandler.Info)

	e.GET("/route", r.routeHandler.ComputeRoute)
	e.GET("/compare", r.routeHandler.CompareAlgorithms)
	e.GET("/stats", r.routeHandler.GraphStats)
}
