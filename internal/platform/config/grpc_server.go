package config

import (
	"errors"
	"net"
)

type GrpcServerConfig struct {
	Port              string `koanf:"port"`
	ReflectionEnabled bool   `koanf:"reflection"`
}

// Addr is the listen address for the gRPC server.
func (c *GrpcServerConfig) Addr() string {
	return net.JoinHostPort("", c.Port)
}

func (c *GrpcServerConfig) String() string {
	return section("gRPC", "grpc.port", c.Port, "grpc.reflection", c.ReflectionEnabled)
}

func (c *GrpcServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("grpc.port is not configured")
	}
	return nil
}
