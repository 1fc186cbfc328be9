// Package app contains the application setup for the catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/catalog/service"
	"github.com/abgdnv/productcatalog/internal/catalog/store"
	grpcImpl "github.com/abgdnv/productcatalog/internal/catalog/transport/grpc"
	"github.com/abgdnv/productcatalog/internal/catalog/transport/rest"
	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/platform/messaging"
	"github.com/abgdnv/productcatalog/internal/platform/server"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

type Dependencies struct {
	CatalogService service.CatalogService
	HealthServer   *health.Server
	Logger         *slog.Logger
}

// SetupDependencies builds the in-memory store, optionally seeded, and the catalog service on top of it.
func SetupDependencies(seed bool, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	var opts []store.Option
	if seed {
		opts = append(opts, store.WithProducts(store.SeedProducts()...))
	}

	return &Dependencies{
		CatalogService: service.NewService(store.NewInMemoryStore(opts...), publisher, logger),
		HealthServer:   grpcImpl.NewHealthServer(),
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the router and routes for the catalog service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the catalog service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	catalogHandler := rest.NewHandler(deps.CatalogService, deps.Logger)
	catalogHandler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
// Requests are traced when telemetry is enabled.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	handler := SetupHttpHandler(deps)
	if cfg.Telemetry.Enabled {
		handler = server.WithTracing(handler, "catalog-http")
	}

	return server.NewHTTPServer(cfg.HTTPServer, handler)
}

// SetupGrpcServer initializes the gRPC server for the catalog service.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(deps.Logger, reflectionEnabled, grpcImpl.RegisterHealth(deps.HealthServer))
}
