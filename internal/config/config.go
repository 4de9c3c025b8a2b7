// Package config holds the server configuration, optionally loaded from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/janpfeifer/GoSet/internal/game"
	"gopkg.in/yaml.v3"
)

// Defaults used for values not set in the configuration file.
const (
	DefaultMaxSessions = 1000
	DefaultSessionTTL  = 2 * time.Hour
)

// ServerConfig configures the game server.
type ServerConfig struct {
	// Addr to listen on. Empty means an automatic port on localhost.
	Addr string `yaml:"addr"`

	// DefaultVariant is the variant started by clients that don't ask for a specific one.
	DefaultMode game.Mode `yaml:"default_mode"`
	DefaultEvil bool      `yaml:"default_evil"`

	// MaxSessions limits the number of concurrent games. New games are refused beyond it.
	MaxSessions int `yaml:"max_sessions"`

	// SessionTTL is how long a game can stay idle before it is discarded.
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// Default returns the configuration used when no file is given.
func Default() *ServerConfig {
	return &ServerConfig{
		DefaultMode: game.ModeSet,
		MaxSessions: DefaultMaxSessions,
		SessionTTL:  DefaultSessionTTL,
	}
}

// DefaultVariant returns the variant configured by DefaultMode and DefaultEvil.
func (c *ServerConfig) DefaultVariant() game.Variant {
	return game.Variant{Mode: c.DefaultMode, Evil: c.DefaultEvil}
}

// Load reads the configuration from the YAML file at path.
// Values missing from the file keep their defaults.
func Load(path string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML configuration. Values missing keep their defaults.
func Parse(data []byte) (*ServerConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *ServerConfig) Validate() error {
	var errs []error
	if c.DefaultMode != game.ModeSet && c.DefaultMode != game.ModeUltraset {
		errs = append(errs, fmt.Errorf("invalid default_mode %d", int(c.DefaultMode)))
	}
	if c.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("max_sessions must be positive, got %d", c.MaxSessions))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid server config: %w", errors.Join(errs...))
	}
	return nil
}
