package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	Server  ServerConfig
	Engine  EngineConfig
	Logging LoggingConfig
}

// ServerConfig holds server specific configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// EngineConfig holds configuration for the external backtest engine.
type EngineConfig struct {
	URL         string
	Timeout     time.Duration
	WaitOnStart bool
}

// LoggingConfig holds logging specific configuration.
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables.
// A missing config file is fine; defaults and environment cover everything.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "30s")
	v.SetDefault("server.idleTimeout", "120s")

	// The FastAPI backtest engine's default address. Backtests can be slow,
	// so the run timeout is generous.
	v.SetDefault("engine.url", "http://127.0.0.1:8000")
	v.SetDefault("engine.timeout", "120s")
	v.SetDefault("engine.waitOnStart", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
