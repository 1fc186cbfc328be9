// Package main runs the product catalog HTTP and gRPC servers.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/abgdnv/productcatalog/internal/catalog/app"
	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/platform/bootstrap"
	"github.com/abgdnv/productcatalog/internal/platform/config/configloader"
	"github.com/abgdnv/productcatalog/internal/platform/messaging"
	natsclient "github.com/abgdnv/productcatalog/internal/platform/nats"
	"github.com/abgdnv/productcatalog/internal/platform/telemetry"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const serviceName = "catalog"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads the configuration, wires telemetry and messaging, and starts the HTTP, gRPC and pprof servers.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName, config.Defaults())
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(serviceName, cfg.Log.Level)
	slog.SetDefault(logger)

	mp, err := telemetry.NewMeterProvider(serviceName)
	if err != nil {
		return fmt.Errorf("failed to create meter provider: %w", err)
	}
	defer shutdownProvider(logger, "meter provider", cfg.Shutdown.Timeout, mp.Shutdown)

	if cfg.Telemetry.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx, serviceName, cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("failed to create tracer provider: %w", err)
		}
		defer shutdownProvider(logger, "tracer provider", cfg.Shutdown.Timeout, tp.Shutdown)
		logger.Info("Tracing enabled", slog.String("endpoint", cfg.Telemetry.Traces.OtlpHttp.Endpoint))
	}

	publisher, closePublisher, err := setupPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	deps := app.SetupDependencies(cfg.Catalog.Seed, publisher, logger)
	httpServer, pprofServer, grpcServer := setupServers(deps, cfg)

	g, gCtx := errgroup.WithContext(ctx)
	serveHTTP(gCtx, g, logger.With("server", "http"), httpServer, cfg.Shutdown.Timeout)
	serveGRPC(gCtx, g, logger.With("server", "grpc"), grpcServer, cfg.GRPC.Addr(), cfg.Shutdown.Timeout, deps.HealthServer.Shutdown)
	if cfg.PProf.Enabled {
		serveHTTP(gCtx, g, logger.With("server", "pprof"), pprofServer, cfg.Shutdown.Timeout)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// serveHTTP runs srv in g and shuts it down once ctx is done.
func serveHTTP(ctx context.Context, g *errgroup.Group, logger *slog.Logger, srv *http.Server, timeout time.Duration) {
	g.Go(func() error {
		logger.Info("Server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server on %s failed: %w", srv.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// serveGRPC runs srv in g. On shutdown beforeStop runs first, then GracefulStop,
// falling back to Stop when draining takes longer than timeout.
func serveGRPC(ctx context.Context, g *errgroup.Group, logger *slog.Logger, srv *grpc.Server, addr string, timeout time.Duration, beforeStop func()) {
	g.Go(func() error {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on gRPC address %s: %w", addr, err)
		}
		logger.Info("Server listening", slog.String("addr", addr))
		return srv.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		beforeStop()
		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
			logger.Info("Server stopped gracefully.")
			return nil
		case <-time.After(timeout):
			logger.Warn("Graceful stop timed out. Forcing stop.")
			srv.Stop()
			return fmt.Errorf("grpc server graceful stop timed out")
		}
	})
}

// setupPublisher connects to NATS JetStream when enabled and guards publishing with a circuit breaker.
// With NATS disabled events are dropped.
func setupPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.NATS.Enabled {
		logger.Info("NATS disabled, catalog events are not published")
		return messaging.NopPublisher{}, func() {}, nil
	}

	nc, err := natsclient.NewClient(cfg.NATS.Url, cfg.NATS.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := natsclient.NewJetStreamContext(nc)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	streamCtx, cancel := context.WithTimeout(ctx, cfg.NATS.Timeout)
	defer cancel()
	if err := natsclient.EnsureStream(streamCtx, js, cfg.NATS.Stream); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Info("Successfully connected to NATS", slog.String("stream", cfg.NATS.Stream))

	publisher := messaging.NewBreakerPublisher("catalog-events", natsclient.NewNatsPublisher(js), messaging.BreakerSettings{
		ConsecutiveFailures: cfg.NATS.CircuitBreaker.ConsecutiveFailures,
		OpenTimeout:         cfg.NATS.CircuitBreaker.OpenTimeout,
	})
	return publisher, func() {
		if err := nc.Drain(); err != nil {
			logger.Error("Failed to drain NATS connection", "error", err)
		}
	}, nil
}

// setupServers initializes the HTTP, pprof, and gRPC servers.
func setupServers(deps *app.Dependencies, cfg *config.Config) (*http.Server, *http.Server, *grpc.Server) {
	httpServer := app.SetupHttpServer(deps, cfg)
	grpcServer := app.SetupGrpcServer(deps, cfg.GRPC.ReflectionEnabled)
	pprofServer := &http.Server{
		Addr:              cfg.PProf.Addr,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout.ReadHeader,
	}
	return httpServer, pprofServer, grpcServer
}

func shutdownProvider(logger *slog.Logger, name string, timeout time.Duration, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("Failed to shut down "+name, "error", err)
	}
}
