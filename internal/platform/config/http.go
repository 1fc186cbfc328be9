package config

import (
	"fmt"
	"time"
)

// HTTPConfig configures the REST listener.
type HTTPConfig struct {
	Port           int           `koanf:"port"`
	MaxHeaderBytes int           `koanf:"maxHeaderBytes"`
	Timeout        TimeoutConfig `koanf:"timeout"`
}

type TimeoutConfig struct {
	Read       time.Duration `koanf:"read"`
	Write      time.Duration `koanf:"write"`
	Idle       time.Duration `koanf:"idle"`
	ReadHeader time.Duration `koanf:"readHeader"`
}

func (c *HTTPConfig) String() string {
	return section("Server",
		"server.port", c.Port,
		"server.maxHeaderBytes", c.MaxHeaderBytes,
		"server.timeout.read", c.Timeout.Read,
		"server.timeout.write", c.Timeout.Write,
		"server.timeout.idle", c.Timeout.Idle,
		"server.timeout.readHeader", c.Timeout.ReadHeader,
	)
}

func (c *HTTPConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Port)
	}
	timeouts := []struct {
		key   string
		value time.Duration
	}{
		{"read", c.Timeout.Read},
		{"write", c.Timeout.Write},
		{"idle", c.Timeout.Idle},
		{"readHeader", c.Timeout.ReadHeader},
	}
	for _, t := range timeouts {
		if t.value <= 0 {
			return fmt.Errorf("invalid server.timeout.%s: %v", t.key, t.value)
		}
	}
	return nil
}
