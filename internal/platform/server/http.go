// Package server constructs the HTTP and gRPC servers used by the service.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/platform/config"
	"github.com/abgdnv/productcatalog/internal/platform/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPServer creates an http.Server on every interface at cfg.Port with the configured limits.
func NewHTTPServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Timeout.Read,
		WriteTimeout:      cfg.Timeout.Write,
		IdleTimeout:       cfg.Timeout.Idle,
		ReadHeaderTimeout: cfg.Timeout.ReadHeader,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// NewChiRouter creates a chi router with request id injection, structured logging and panic recovery.
// Duplicate slashes in the path are collapsed before routing.
func NewChiRouter(logger *slog.Logger) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.CleanPath)
	mux.Use(web.RequestIDInjector)
	mux.Use(web.StructuredLogger(logger))
	mux.Use(web.Recoverer(logger))
	return mux
}

// WithTracing wraps handler so every request starts a server span named after the operation.
func WithTracing(handler http.Handler, operation string) http.Handler {
	return otelhttp.NewHandler(handler, operation)
}
