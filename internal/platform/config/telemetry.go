package config

import (
	"errors"
	"time"
)

// TelemetryConfig switches on trace export over OTLP/HTTP.
// Metrics are always collected and served on /metrics.
type TelemetryConfig struct {
	Enabled bool         `koanf:"enabled"`
	Traces  TracesConfig `koanf:"traces"`
}

type TracesConfig struct {
	OtlpHttp OtlpHttpConfig `koanf:"otlphttp"`
}

type OtlpHttpConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Insecure bool          `koanf:"insecure"`
	Timeout  time.Duration `koanf:"timeout"`
}

func (c *TelemetryConfig) String() string {
	otlp := c.Traces.OtlpHttp
	return section("Telemetry",
		"telemetry.enabled", c.Enabled,
		"telemetry.traces.otlphttp.endpoint", otlp.Endpoint,
		"telemetry.traces.otlphttp.insecure", otlp.Insecure,
		"telemetry.traces.otlphttp.timeout", otlp.Timeout,
	)
}

func (c *TelemetryConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Traces.OtlpHttp.Endpoint == "" {
		return errors.New("telemetry.traces.otlphttp.endpoint is not configured")
	}
	if c.Traces.OtlpHttp.Timeout <= 0 {
		return errors.New("telemetry.traces.otlphttp.timeout must be greater than 0")
	}
	return nil
}
