package config

import (
	"errors"
	"time"
)

// CircuitBreakerConfig guards event publishing. The breaker opens after more than
// ConsecutiveFailures failed publishes and stays open for OpenTimeout.
type CircuitBreakerConfig struct {
	ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
	OpenTimeout         time.Duration `koanf:"opentimeout"`
}

func (c *CircuitBreakerConfig) pairs(prefix string) []any {
	return []any{
		prefix + ".consecutivefailures", c.ConsecutiveFailures,
		prefix + ".opentimeout", c.OpenTimeout,
	}
}

func (c *CircuitBreakerConfig) Validate() error {
	if c.ConsecutiveFailures == 0 {
		return errors.New("circuitbreaker.consecutivefailures must be greater than 0")
	}
	if c.OpenTimeout <= 0 {
		return errors.New("circuitbreaker.opentimeout must be greater than 0")
	}
	return nil
}
