package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database ("memory" keeps the list in process and resets on restart)
	DBDriver     string
	DBConnection string

	// Reminders
	TrayCapacity    int
	RateLimitAdd    int
	RateLimitWindow time.Duration

	// Proxy: honour X-Forwarded-For / X-Real-IP only behind a trusted reverse proxy
	TrustProxy bool

	// Email (reminders are emailed only when NOTIFY_EMAIL is set)
	NotifyEmail  string
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Export archive (optional, S3-compatible)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Medtrack"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "memory"),
		DBConnection: envString("DB_CONNECTION", "./data/medtrack.db?_pragma=journal_mode(WAL)"),

		// Reminders
		TrayCapacity:    envInt("TRAY_CAPACITY", 50),
		RateLimitAdd:    envInt("RATE_LIMIT_ADD", 30),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", time.Minute),

		// Proxy
		TrustProxy: envBool("TRUST_PROXY", false),

		// Email
		NotifyEmail:  envString("NOTIFY_EMAIL", ""),
		EmailFrom:    envString("EMAIL_FROM", "reminders@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Export archive
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", time.Hour),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction fails fast on settings that only work in development.
func validateProduction(cfg *Config) {
	if cfg.NotifyEmail != "" && cfg.ResendAPIKey == "" {
		slog.Error("production email reminders require RESEND_API_KEY",
			"hint", "unset NOTIFY_EMAIL or set APP_ENV=development to log emails instead")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) IsPersistent() bool {
	return c.DBDriver != "memory"
}

// Sanitized returns a copy with only values safe to expose to templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:    c.AppName,
		AppEnv:     c.AppEnv,
		AppURL:     c.AppURL,
		Port:       c.Port,
		DBDriver:   c.DBDriver,
		TrustProxy: c.TrustProxy,
	}
}
