package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	DatabaseKindMemory = "memory"
	DatabaseKindSql    = "sql"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv           string
	Port             string
	TemporalHostPort string
	TaskQueue        string
	DatabaseKind     string
	DatabaseURL      string
	LogFormat        string
	LogLevel         string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:           valueOrDefault(k.String("APP_ENV"), "development"),
		Port:             valueOrDefault(k.String("PORT"), "8080"),
		TemporalHostPort: valueOrDefault(k.String("TEMPORAL_HOST_PORT"), "localhost:7233"),
		TaskQueue:        k.String("TASK_QUEUE"),
		DatabaseKind:     valueOrDefault(k.String("DATABASE_KIND"), DatabaseKindMemory),
		DatabaseURL:      k.String("DATABASE_URL"),
		LogFormat:        valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:         valueOrDefault(k.String("LOG_LEVEL"), "info"),
	}

	if cfg.TaskQueue == "" {
		cfg.TaskQueue = cfg.AppEnv + "-checkout"
	}

	switch cfg.DatabaseKind {
	case DatabaseKindMemory:
	case DatabaseKindSql:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when DATABASE_KIND is sql")
		}
	default:
		return nil, fmt.Errorf("unknown DATABASE_KIND: %s", cfg.DatabaseKind)
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// NewLogger configures a zerolog logger using the configured format and level.
func (c *Config) NewLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stdout
	if strings.ToLower(strings.TrimSpace(c.LogFormat)) == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
