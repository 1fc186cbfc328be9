// Package configloader loads typed service configuration from a YAML file, a .env file and the environment.
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

const (
	configFile = "config.yaml"
	envFile    = ".env"
)

// Load builds a T from, in increasing priority: defaults, config.yaml, .env and system environment variables.
// Environment keys use the <SERVICE_NAME>_ prefix and underscores as separators,
// e.g. CATALOG_SERVER_PORT overrides server.port.
func Load[T Validator](serviceName string, defaults map[string]any) (T, error) {
	var cfg T
	l := &layers{
		k:      koanf.New("."),
		prefix: strings.ToUpper(serviceName) + "_",
	}

	if err := l.defaults(defaults); err != nil {
		return cfg, err
	}
	l.yamlFile(configFile)
	l.dotEnv(envFile)
	l.environment()

	if err := l.k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// layers merges configuration sources into one koanf instance; later layers win.
// Only a broken defaults map is fatal, the other sources are optional and only warn.
type layers struct {
	k      *koanf.Koanf
	prefix string
}

func (l *layers) defaults(values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	if err := l.k.Load(confmap.Provider(values, "."), nil); err != nil {
		return fmt.Errorf("error loading default config: %w", err)
	}
	return nil
}

func (l *layers) yamlFile(path string) {
	err := l.k.Load(file.Provider(path), yaml.Parser())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARN: error loading YAML config file '%s': %v", path, err)
	}
}

// dotEnv loads only the prefixed keys of a .env file, so unrelated variables cannot leak into the config.
func (l *layers) dotEnv(path string) {
	values, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("WARN: error reading .env file: %v", err)
		}
		return
	}
	m := make(map[string]any, len(values))
	for key, value := range values {
		if strings.HasPrefix(strings.ToUpper(key), l.prefix) {
			m[l.key(key)] = value
		}
	}
	if err := l.k.Load(confmap.Provider(m, "."), nil); err != nil {
		log.Printf("WARN: error loading .env config: %v", err)
	}
}

func (l *layers) environment() {
	if err := l.k.Load(env.Provider(l.prefix, ".", l.key), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}
}

// key maps CATALOG_SERVER_PORT to server.port.
func (l *layers) key(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimPrefix(name, strings.ToLower(l.prefix))
	return strings.ReplaceAll(name, "_", ".")
}
