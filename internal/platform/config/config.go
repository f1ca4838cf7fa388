// Package config loads the service configuration from an optional YAML file,
// a .env file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORSOrigins     []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Coinbase struct {
		BaseURL   string        `yaml:"base_url" default:"https://api.exchange.coinbase.com" validate:"required,url"`
		UserAgent string        `yaml:"user_agent" default:"crypto-dashboard/1.0" validate:"required"`
		Timeout   time.Duration `yaml:"timeout" default:"10s" validate:"gt=0"`
	} `yaml:"coinbase"`
	RateLimit struct {
		Requests int           `yaml:"requests" default:"10" validate:"gte=0"`
		Interval time.Duration `yaml:"interval" default:"1s" validate:"gt=0"`
	} `yaml:"rate_limit"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host" default:"localhost"`
		Port     int    `yaml:"port" default:"6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix" default:"crypto_dashboard:ratelimit"`
	} `yaml:"redis"`
	Database struct {
		Driver string `yaml:"driver" validate:"omitempty,oneof=sqlite postgres"`
		DSN    string `yaml:"dsn" validate:"required_with=Driver"`
		Seed   bool   `yaml:"seed" default:"true"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"json" validate:"oneof=json text"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
}

// Load reads path (skipped when empty or missing), applies .env and
// environment overrides, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Info("config file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// applyEnv overrides fields with environment variables.
func (c *Config) applyEnv() error {
	var e envReader

	e.setInt("PORT", &c.Server.Port)
	e.setList("CORS_ORIGINS", &c.Server.CORSOrigins)

	e.setString("COINBASE_BASE_URL", &c.Coinbase.BaseURL)
	e.setString("COINBASE_USER_AGENT", &c.Coinbase.UserAgent)
	e.setDuration("COINBASE_TIMEOUT", &c.Coinbase.Timeout)

	e.setInt("RATE_LIMIT_REQUESTS", &c.RateLimit.Requests)
	e.setDuration("RATE_LIMIT_INTERVAL", &c.RateLimit.Interval)

	e.setBool("REDIS_ENABLED", &c.Redis.Enabled)
	e.setString("REDIS_HOST", &c.Redis.Host)
	e.setInt("REDIS_PORT", &c.Redis.Port)
	e.setString("REDIS_PASSWORD", &c.Redis.Password)

	e.setString("DB_DRIVER", &c.Database.Driver)
	e.setString("DB_DSN", &c.Database.DSN)
	e.setBool("DB_SEED", &c.Database.Seed)

	e.setString("LOG_LEVEL", &c.Log.Level)
	e.setString("LOG_FORMAT", &c.Log.Format)
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)

	return e.err
}

// envReader keeps the first malformed override.
type envReader struct {
	err error
}

func (e *envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("env %s: %w", key, err)
	}
}

func (e *envReader) setString(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) setList(key string, dst *[]string) {
	if v, ok := e.lookup(key); ok {
		*dst = splitList(v)
	}
}

func (e *envReader) setInt(key string, dst *int) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = n
}

func (e *envReader) setBool(key string, dst *bool) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = b
}

func (e *envReader) setDuration(key string, dst *time.Duration) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = d
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

// RedisAddr is host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + strconv.Itoa(c.Redis.Port)
}

// SlogLevel maps Log.Level to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
