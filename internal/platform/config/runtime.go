package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LogConfig selects the minimum log level. An empty level means info.
type LogConfig struct {
	Level string `koanf:"level"`
}

func (c *LogConfig) String() string {
	return section("Log", "log.level", c.Level)
}

func (c *LogConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level: %q", c.Level)
	}
}

// PProfConfig exposes net/http/pprof on a separate listener.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

func (c *PProfConfig) String() string {
	return section("PProf", "pprof.enabled", c.Enabled, "pprof.addr", c.Addr)
}

func (c *PProfConfig) Validate() error {
	if c.Enabled && c.Addr == "" {
		return errors.New("pprof is enabled but pprof.addr is empty")
	}
	return nil
}

// ShutdownConfig bounds how long servers get to drain on SIGINT/SIGTERM.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	return section("Shutdown", "shutdown.timeout", c.Timeout)
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("shutdown.timeout must be positive, got %v", c.Timeout)
	}
	return nil
}
