package openclaw

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration. The
// zero value is useful – all nested fields inherit their package defaults.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// JournalConfig enables the on-disk audit journal when BasePath is set.
type JournalConfig struct {
	BasePath string `json:"basePath" yaml:"basePath"`
}

type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8090"},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}

// LoadConfig reads a YAML config file, layered over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
