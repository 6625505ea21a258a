package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	EnvDevelopment = "DEV"
	EnvProduction  = "PROD"
)

type AppConfig struct {
	AppEnv           string // EnvDevelopment or EnvProduction
	LogLevel         slog.Level
	ListenAddr       string
	PlaceholderURL   string
	HTTPTimeout      time.Duration
	ProxyURL         string
	FetchConcurrency int
	SessionTTL       time.Duration
	DefaultUserID    int
}

var Config AppConfig

func LoadConfig() {
	cfg := AppConfig{}

	cfg.AppEnv = loadOptional("APP_ENV", EnvDevelopment)
	cfg.ListenAddr = loadOptional("LISTEN_ADDR", ":8080")
	cfg.PlaceholderURL = loadOptional("PLACEHOLDER_URL", "https://jsonplaceholder.typicode.com")
	cfg.ProxyURL = os.Getenv("PROXY_URL")
	cfg.HTTPTimeout = time.Duration(loadOptionalInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second
	cfg.FetchConcurrency = loadOptionalInt("FETCH_CONCURRENCY", 1)
	cfg.SessionTTL = time.Duration(loadOptionalInt("SESSION_TTL_MINUTES", 30)) * time.Minute
	cfg.DefaultUserID = loadOptionalInt("DEFAULT_USER_ID", 1)

	lvlString := loadOptional("LOG_LEVEL", "INFO")
	var err error
	cfg.LogLevel, err = parseLogLevel(lvlString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	if cfg.FetchConcurrency < 1 {
		slog.Error("Invalid FETCH_CONCURRENCY, using 1", "value", cfg.FetchConcurrency)
		cfg.FetchConcurrency = 1
	}

	Config = cfg
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func loadOptionalInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Error("Invalid integer env var, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return n
}

func (c AppConfig) IsProduction() bool {
	return c.AppEnv == EnvProduction
}
