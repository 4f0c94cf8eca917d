package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/yunusemre274/World-Car/config"
	"github.com/yunusemre274/World-Car/internal/delivery"
	"github.com/yunusemre274/World-Car/internal/delivery/http"
	"github.com/yunusemre274/World-Car/internal/delivery/http/router/handler"
	"github.com/yunusemre274/World-Car/internal/delivery/middleware"
	"github.com/yunusemre274/World-Car/internal/errors"
	logs "github.com/yunusemre274/World-Car/internal/infra/log"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
	"github.com/yunusemre274/World-Car/internal/infra/routing/loader"
	"github.com/yunusemre274/World-Car/internal/infra/routing/spatial"
	"github.com/yunusemre274/World-Car/internal/usecase"
	"github.com/yunusemre274/World-Car/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		loadGraph,
		newSpatialIndex,
	)
}

// loadGraph reads the prepared road network from the CSV cache.
func loadGraph(cfg *config.Config, logger *slog.Logger) (*graph.Graph, error) {
	csvLoader := loader.NewCSVLoader(cfg.Graph.DataDir)
	if !csvLoader.Exists() {
		return nil, errors.Errorf(
			"no road network found in %s, run `worldcar-graph download` and `worldcar-graph convert` first",
			cfg.Graph.DataDir,
		)
	}

	g, err := csvLoader.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load road network")
	}

	logger.Info("road network loaded",
		slog.String("dataDir", cfg.Graph.DataDir),
		slog.Int("nodes", g.NumNodes()),
		slog.Int("edges", g.NumEdges()),
	)

	return g, nil
}

func newSpatialIndex(cfg *config.Config, g *graph.Graph) *spatial.GridIndex {
	return spatial.NewGridIndex(g, cfg.Routing.GridCellSizeKm)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			newRoutingService,
		),
	)
}

func newRoutingService(cfg *config.Config, g *graph.Graph, index *spatial.GridIndex, logger *slog.Logger) usecase.RoutingUsecase {
	return impl.NewRoutingService(cfg.Routing, g, index, logger)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewRouteHandler,
			handler.NewSystemHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
