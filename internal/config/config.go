// Package config resolves runtime configuration from the environment,
// an optional .env file and built-in defaults, in that precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DBPath   string `mapstructure:"PRONTUARIO_DB"`
	Format   string `mapstructure:"PRONTUARIO_FORMAT"`
	LogLevel string `mapstructure:"PRONTUARIO_LOG_LEVEL"`
	LogJSON  bool   `mapstructure:"PRONTUARIO_LOG_JSON"`
}

// DefaultDBPath places the database under the user's home directory.
// It falls back to the working directory when home cannot be resolved.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "prontuario.db"
	}
	return filepath.Join(home, ".prontuario", "prontuario.db")
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PRONTUARIO_DB", DefaultDBPath())
	v.SetDefault("PRONTUARIO_FORMAT", "text")
	v.SetDefault("PRONTUARIO_LOG_LEVEL", "warn")
	v.SetDefault("PRONTUARIO_LOG_JSON", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PRONTUARIO_DB")
	v.BindEnv("PRONTUARIO_FORMAT")
	v.BindEnv("PRONTUARIO_LOG_LEVEL")
	v.BindEnv("PRONTUARIO_LOG_JSON")

	// Try reading .env, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("PRONTUARIO_DB must not be empty")
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("PRONTUARIO_FORMAT must be \"text\" or \"json\", got %q", c.Format)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("PRONTUARIO_LOG_LEVEL must be a zerolog level, got %q", c.LogLevel)
	}
	return nil
}
