// Package config loads f1dash runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIBaseURL   = "API_BASE_URL"
	EnvListen       = "F1DASH_LISTEN"
	EnvHTTPTimeout  = "F1DASH_HTTP_TIMEOUT"
	EnvLogLevel     = "F1DASH_LOG_LEVEL"
	EnvLogFile      = "F1DASH_LOG_FILE"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvServiceName  = "OTEL_SERVICE_NAME"
)

// Defaults used when the environment leaves a setting empty.
const (
	DefaultAPIBaseURL  = "http://localhost:9000"
	DefaultListen      = ":8080"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultServiceName = "f1dash"
	DefaultEnvFile     = ".env"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	APIBaseURL   string        // F1 API base URL, e.g. http://localhost:9000
	Listen       string        // address for `f1dash serve`
	HTTPTimeout  time.Duration // per-request timeout of the fetch adapter
	LogLevel     slog.Level
	LogFile      string // TUI log destination
	OTLPEndpoint string // empty disables trace export
	ServiceName  string
}

// Load reads envFile (if it exists) into the process environment and builds
// a Config from it. Variables already set in the environment win over the
// file, as godotenv.Load does not overwrite them.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		APIBaseURL:   getEnvOr(EnvAPIBaseURL, DefaultAPIBaseURL),
		Listen:       getEnvOr(EnvListen, DefaultListen),
		HTTPTimeout:  DefaultHTTPTimeout,
		LogLevel:     slog.LevelInfo,
		LogFile:      getEnvOr(EnvLogFile, filepath.Join(os.TempDir(), "f1dash.log")),
		OTLPEndpoint: os.Getenv(EnvOTLPEndpoint),
		ServiceName:  getEnvOr(EnvServiceName, DefaultServiceName),
	}

	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvHTTPTimeout, err)
		}
		cfg.HTTPTimeout = d
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

// ParseLevel maps debug/info/warn/error (case-insensitive) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

// NewLogger returns a JSON logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

func getEnvOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
