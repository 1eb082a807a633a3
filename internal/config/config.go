package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceEngine = "engine"
	SourceMock   = "mock"
)

// RateLimit configures per-client limiting of the API. RPS only drives the
// in-memory token bucket. With REDIS_URL set the limiter counts fixed
// one-second windows and Burst is the whole budget of each window.
type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type Config struct {
	Port          int
	Source        string
	EngineURL     string
	EngineTimeout time.Duration
	StarScale     int
	RedisURL      string
	RateLimit     RateLimit
	LogLevel      slog.Level
}

// LoadFile loads env vars from path before reading the configuration.
// An empty path tries ./.env and ignores a missing file.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	} else {
		_ = godotenv.Load()
	}
	return Load()
}

// Load configuration from env
func Load() (*Config, error) {
	source := strings.ToLower(getEnv("SOURCE", SourceEngine))
	if source != SourceEngine && source != SourceMock {
		return nil, fmt.Errorf("invalid SOURCE %q: want %q or %q", source, SourceEngine, SourceMock)
	}

	starScale := 10
	if v := os.Getenv("STAR_SCALE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || (n != 10 && n != 5) {
			return nil, fmt.Errorf("invalid STAR_SCALE %q: want 10 or 5", v)
		}
		starScale = n
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return &Config{
		Port:          getEnvInt("PORT", 3000),
		Source:        source,
		EngineURL:     getEnv("ENGINE_URL", "http://127.0.0.1:8000/recommendations"),
		EngineTimeout: getEnvDuration("ENGINE_TIMEOUT", 0),
		StarScale:     starScale,
		RedisURL:      getEnv("REDIS_URL", ""),
		RateLimit: RateLimit{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", false),
			RPS:     getEnvFloat("RATE_LIMIT_RPS", 2),
			Burst:   getEnvInt("RATE_LIMIT_BURST", 4),
		},
		LogLevel: level,
	}, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return fallback
}
