package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	StaticDir string          `yaml:"static_dir"` // Directory holding the page documents
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Alerts    AlertsConfig    `yaml:"alerts"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// RateLimitConfig bounds API calls per client IP. RPS of 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// AlertsConfig controls where recorded alerts are forwarded
type AlertsConfig struct {
	Redis   RedisConfig   `yaml:"redis"`
	Breaker BreakerConfig `yaml:"breaker"`
}

// RedisConfig points at a Redis pub/sub channel. An empty Addr disables forwarding.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

// BreakerConfig tunes the circuit breaker around forwarding
type BreakerConfig struct {
	ConsecutiveFailures uint32        `yaml:"consecutive_failures"`
	OpenTimeout         time.Duration `yaml:"open_timeout"`
}

// LogConfig sets the zerolog level
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "127.0.0.1", // Local-only by default
			Port:           5000,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			RequestTimeout: 5 * time.Second,
		},
		StaticDir: "web",
		RateLimit: RateLimitConfig{RPS: 20, Burst: 40},
		Alerts: AlertsConfig{
			Redis:   RedisConfig{Channel: "cea:alerts"},
			Breaker: BreakerConfig{ConsecutiveFailures: 3, OpenTimeout: 60 * time.Second},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults, applies environment overrides and validates
// the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if portStr := os.Getenv("HTTP_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("HTTP_PORT must be an integer, got %q", portStr)
		}
		c.Server.Port = p
	}
	return nil
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts cannot be negative")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server request_timeout must be positive, got %s", c.Server.RequestTimeout)
	}
	if c.StaticDir == "" {
		return fmt.Errorf("static_dir cannot be empty")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate_limit rps cannot be negative, got %f", c.RateLimit.RPS)
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit burst must be at least 1 when rps is set, got %d", c.RateLimit.Burst)
	}
	if c.Alerts.Redis.Addr != "" && c.Alerts.Redis.Channel == "" {
		return fmt.Errorf("alerts redis channel cannot be empty when addr is set")
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of trace|debug|info|warn|error, got %q", c.Log.Level)
	}
	return nil
}

// Address returns host:port for the listener
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
