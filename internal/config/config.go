package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHost        = "0.0.0.0"
	defaultPort        = "3001"
	defaultJWTTTL      = "24h"
	defaultSMTPPort    = "587"
	defaultFrontendURL = "http://localhost:5173"
	defaultRateLimit   = "10"
	defaultRateWindow  = "1m"
)

// Config is the process-wide runtime configuration, read once at startup.
// Handlers receive it by injection, never through package globals.
type Config struct {
	Host        string
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	TelegramBotToken string
	TelegramChatID   int64

	SMTPHost   string
	SMTPPort   int
	SMTPSecure bool
	SMTPUser   string
	SMTPPass   string
	EmailFrom  string

	FrontendURL string
	AdminAPIKey string

	RateLimit       int
	RateLimitWindow time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:             getEnv("HOST", defaultHost),
		Port:             getEnv("PORT", defaultPort),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		SMTPHost:         strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPUser:         strings.TrimSpace(os.Getenv("SMTP_USER")),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		EmailFrom:        strings.TrimSpace(os.Getenv("EMAIL_FROM")),
		FrontendURL:      strings.TrimRight(getEnv("FRONTEND_URL", defaultFrontendURL), "/"),
		AdminAPIKey:      strings.TrimSpace(os.Getenv("ADMIN_API_KEY")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is empty")
	}

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow, err = parseDurationEnv("RATE_LIMIT_WINDOW", defaultRateWindow)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit, err = parseIntEnv("RATE_LIMIT", defaultRateLimit)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort, err = parseIntEnv("SMTP_PORT", defaultSMTPPort)
	if err != nil {
		return nil, err
	}
	cfg.SMTPSecure = parseBoolEnv("SMTP_SECURE", false)

	if chatID := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); chatID != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: TELEGRAM_CHAT_ID is not a number: %w", err)
		}
	}

	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUser
	}

	return cfg, nil
}

// TelegramEnabled reports whether the ops channel can be wired at all.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// SMTPEnabled reports whether client email can be wired at all.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, raw, err)
	}
	return d, nil
}

func parseIntEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number: %w", key, raw, err)
	}
	return n, nil
}

func parseBoolEnv(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}
