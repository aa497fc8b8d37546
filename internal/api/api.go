// Package api assembles the Echo server: middleware, operational endpoints,
// and the Huma-registered /api/v1 routes.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trolley-nz/trolley/internal/api/handlers"
	"github.com/trolley-nz/trolley/internal/api/middleware"
	"github.com/trolley-nz/trolley/internal/catalog"
	"github.com/trolley-nz/trolley/internal/scan"
	"github.com/trolley-nz/trolley/internal/state"
)

const apiVersion = "1.0.0"

// Deps are the components the API serves.
type Deps struct {
	Catalog *catalog.Catalog
	State   *state.Store
	Scanner *scan.Scanner
	// Pinger backs the readiness probe; nil when the persistence backend
	// has nothing to ping.
	Pinger handlers.Pinger
	Log    *slog.Logger
}

// New builds the Echo server with all routes and middleware attached. The
// OpenAPI spec is served at /openapi.json and interactive docs at /docs.
func New(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(deps.Log))
	e.Use(middleware.RequestLog(deps.Log))
	e.Use(middleware.Metrics())

	// Operational endpoints stay plain Echo; they are not part of the
	// public API surface.
	health := handlers.NewHealthHandler(deps.Pinger)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaAPI := humaecho.New(e, huma.DefaultConfig("Trolley API", apiVersion))

	handlers.RegisterProductRoutes(humaAPI, handlers.NewProductsHandler(deps.Catalog))
	handlers.RegisterSpecialsRoutes(humaAPI, handlers.NewSpecialsHandler(deps.Catalog))
	handlers.RegisterRecipeRoutes(humaAPI, handlers.NewRecipesHandler(deps.Catalog))
	handlers.RegisterListRoutes(humaAPI, handlers.NewListHandler(deps.Catalog, deps.State))
	handlers.RegisterFridgeRoutes(humaAPI, handlers.NewFridgeHandler(deps.Catalog, deps.State))
	handlers.RegisterScanRoutes(humaAPI, handlers.NewScanHandler(deps.Scanner, deps.State))

	return e
}
