// Package config defines the catalog service configuration.
package config

import (
	"strings"
	"time"

	"github.com/abgdnv/productcatalog/internal/platform/config"
	"github.com/abgdnv/productcatalog/internal/platform/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	NATS       config.NATSConfig       `koanf:"nats"`
	Catalog    config.CatalogConfig    `koanf:"catalog"`
}

// Defaults are applied below config.yaml, so the service starts with no config file at all.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":               8080,
		"server.maxHeaderBytes":     1 << 20,
		"server.timeout.read":       5 * time.Second,
		"server.timeout.write":      10 * time.Second,
		"server.timeout.idle":       60 * time.Second,
		"server.timeout.readHeader": 2 * time.Second,
		"log.level":                 "info",
		"pprof.enabled":             false,
		"pprof.addr":                "localhost:6060",
		"grpc.port":                 "9090",
		"grpc.reflection":           false,
		"shutdown.timeout":          10 * time.Second,
		"telemetry.enabled":         false,
		"nats.enabled":              false,
		"nats.timeout":              5 * time.Second,
		"nats.stream":               "CATALOG",

		"nats.circuitbreaker.consecutivefailures": 5,
		"nats.circuitbreaker.opentimeout":         30 * time.Second,

		"catalog.seed":              true,
	}
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.NATS.String())
	b.WriteString(c.Catalog.String())
	b.WriteString(c.Shutdown.String())

	return b.String()
}

// Validate checks every section and returns the first error.
func (c *Config) Validate() error {
	return config.ValidateAll(
		&c.HTTPServer,
		&c.Log,
		&c.PProf,
		&c.GRPC,
		&c.Shutdown,
		&c.Telemetry,
		&c.NATS,
		&c.Catalog,
	)
}
