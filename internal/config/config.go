package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete gateway configuration.
type Config struct {
	Gateway     GatewayConfig   `yaml:"gateway"`
	Discovery   DiscoveryConfig `yaml:"discovery"`
	Logging     LoggingConfig   `yaml:"logging"`
	CustomTypes []CustomType    `yaml:"custom_types,omitempty"`
}

// GatewayConfig contains the HTTP/WebSocket listener configuration.
type GatewayConfig struct {
	BindAddress  string `yaml:"bind_address"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`  // seconds
	WriteTimeout int    `yaml:"write_timeout"` // seconds
	// MaxPayloadBytes caps the accepted size of a single LPP payload.
	MaxPayloadBytes int `yaml:"max_payload_bytes"`
}

// DiscoveryConfig controls mDNS advertisement of the gateway.
type DiscoveryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Instance string `yaml:"instance,omitempty"` // service instance name, hostname when empty
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // empty means silent
}

// Default returns a configuration with sensible defaults: listen on all
// interfaces on port 8077, advertise over mDNS, silent logging, no
// custom types.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			BindAddress:     "0.0.0.0",
			Port:            8077,
			ReadTimeout:     10,
			WriteTimeout:    10,
			MaxPayloadBytes: 4096,
		},
		Discovery: DiscoveryConfig{
			Enabled: true,
		},
	}
}

// Load reads and parses the configuration file. A missing file is not an
// error: the defaults are returned so the gateway can run unconfigured.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Save writes the configuration to path. The write is atomic: the file is
// written to a temporary sibling first and then renamed into place.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// Validate performs validation of the whole configuration.
func (c *Config) Validate() error {
	if err := c.Gateway.Validate(); err != nil {
		return fmt.Errorf("gateway config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	seen := make(map[uint8]bool)
	for i, ct := range c.CustomTypes {
		if err := ct.Validate(); err != nil {
			return fmt.Errorf("custom_types[%d]: %w", i, err)
		}
		if seen[ct.ID] {
			return fmt.Errorf("custom_types[%d]: duplicate type id 0x%02x", i, ct.ID)
		}
		seen[ct.ID] = true
	}

	return nil
}

// Validate validates the listener configuration.
func (g *GatewayConfig) Validate() error {
	if g.Port < 1 || g.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", g.Port)
	}

	if g.BindAddress == "" {
		return fmt.Errorf("bind_address cannot be empty")
	}

	if g.ReadTimeout < 1 {
		return fmt.Errorf("read_timeout must be at least 1 second, got %d", g.ReadTimeout)
	}

	if g.WriteTimeout < 1 {
		return fmt.Errorf("write_timeout must be at least 1 second, got %d", g.WriteTimeout)
	}

	if g.MaxPayloadBytes < 3 {
		// 3 bytes is the smallest possible payload: channel, type, 1 value byte
		return fmt.Errorf("max_payload_bytes must be at least 3, got %d", g.MaxPayloadBytes)
	}

	return nil
}

// Validate validates the logging configuration.
func (l *LoggingConfig) Validate() error {
	if l.Level == "" {
		return nil
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got %q", l.Level)
	}

	return nil
}

// Addr returns the listen address in host:port form.
func (g *GatewayConfig) Addr() string {
	return fmt.Sprintf("%s:%d", g.BindAddress, g.Port)
}
