package config

import (
	"errors"
	"strings"
	"time"
)

// NATSConfig enables publishing of product change events to a JetStream stream.
type NATSConfig struct {
	Enabled bool          `koanf:"enabled"`
	Url     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	Stream  string        `koanf:"stream"`

	CircuitBreaker CircuitBreakerConfig `koanf:"circuitbreaker"`
}

func (c *NATSConfig) String() string {
	kv := []any{
		"nats.enabled", c.Enabled,
		"nats.url", maskURL(c.Url),
		"nats.timeout", c.Timeout,
		"nats.stream", c.Stream,
	}
	return section("NATS", append(kv, c.CircuitBreaker.pairs("nats.circuitbreaker")...)...)
}

// Validate skips everything when NATS is disabled.
func (c *NATSConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch {
	case c.Url == "":
		return errors.New("nats.url is not configured")
	case c.Timeout <= 0:
		return errors.New("nats.timeout must be greater than 0")
	case c.Stream == "":
		return errors.New("nats.stream is not configured")
	}
	return c.CircuitBreaker.Validate()
}

// maskURL hides credentials embedded in a URL.
func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	if _, host, found := strings.Cut(url, "@"); found {
		return "****@" + host
	}
	return url
}
