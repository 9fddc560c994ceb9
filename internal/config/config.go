package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"logichain-web/internal/access"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	GinMode    string

	APIBaseURL string
	APITimeout time.Duration

	SessionSecret         string
	SessionCookieName     string
	SessionSecure         bool
	SessionMaxAge         time.Duration
	ClearOnUnauthorized   bool
	DenyMode              access.DenyMode
	AuthAttemptsPerMinute int

	// DBDSN is optional; without it the audit trail is not persisted.
	DBDSN string

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8081"),
		GinMode:           getEnv("GIN_MODE", "release"),
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8080/"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "logichain_session"),
		DBDSN:             os.Getenv("DB_DSN"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.APITimeout, err = getSeconds("API_TIMEOUT_SEC", 15); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getSeconds("SESSION_MAX_AGE_SEC", 86400); err != nil {
		return nil, err
	}
	if cfg.SessionSecure, err = getBool("SESSION_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.ClearOnUnauthorized, err = getBool("SESSION_CLEAR_ON_UNAUTHORIZED", false); err != nil {
		return nil, err
	}
	if cfg.AuthAttemptsPerMinute, err = getInt("LOGIN_RATE_PER_MIN", 10); err != nil {
		return nil, err
	}
	if cfg.DenyMode, err = access.ParseDenyMode(os.Getenv("ACCESS_DENY_MODE")); err != nil {
		return nil, fmt.Errorf("ACCESS_DENY_MODE: %w", err)
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is not set")
	}
	if len(cfg.SessionSecret) < 16 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must not be empty")
	}
	if cfg.AuthAttemptsPerMinute <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MIN must be > 0")
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.ServerPort, ":")
}

func getEnv(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}

func getInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, val)
	}
	return n, nil
}

func getSeconds(key string, fallback int) (time.Duration, error) {
	n, err := getInt(key, fallback)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return time.Duration(n) * time.Second, nil
}

func getBool(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, val)
	}
	return b, nil
}
