// Package grpc exposes the catalog over gRPC. Only the standard health service is served.
package grpc

import (
	"github.com/abgdnv/productcatalog/internal/platform/server"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// CatalogServiceName is the service name reported by the health service.
const CatalogServiceName = "catalog.v1.Catalog"

// NewHealthServer returns a health server that reports SERVING for the catalog and for the server as a whole.
// Call Shutdown on it to flip every status to NOT_SERVING.
func NewHealthServer() *health.Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(CatalogServiceName, healthpb.HealthCheckResponse_SERVING)
	return hs
}

// RegisterHealth returns a registration func that mounts hs on a gRPC server.
func RegisterHealth(hs *health.Server) server.RegistrationFunc {
	return func(s *grpc.Server) {
		healthpb.RegisterHealthServer(s, hs)
	}
}
