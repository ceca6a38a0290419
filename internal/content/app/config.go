package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/service"
	"github.com/aussiebroadwan/contentdeck/pkg/httpx"
	"github.com/aussiebroadwan/contentdeck/pkg/reddit"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	DatabaseFile string // Path to SQLite database file (default: ./contentdeck.db)

	// Session tokens. Secrets must be at least 32 bytes; in dev an empty
	// secret is replaced by a random one.
	AccessSecret  string
	RefreshSecret string
	SessionIssuer string        // iss claim of session tokens (default: contentdeck)
	AccessTTL     time.Duration // default: 15m
	RefreshTTL    time.Duration // default: 7 days

	// Upstream identity provider for login.
	GoogleClientID string
	GoogleIssuer   string // default: https://accounts.google.com

	Reddit reddit.Config

	// MasterKey is base64 key material that seals stored Reddit refresh
	// tokens. Required in prod.
	MasterKey string

	MetricsInterval     time.Duration // default: 5m
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	CORSOrigin          string        // Browser origin allowed to call the API with credentials

	AuthLimit   httpx.RateLimit
	RemoteLimit httpx.RateLimit
	APILimit    httpx.RateLimit
}

func (c Config) IsProd() bool { return c.Env == "prod" }

func LoadConfig() Config {
	return Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "contentdeck.db"),

		AccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		SessionIssuer: getEnvOrDefault("SESSION_ISSUER", "contentdeck"),
		AccessTTL:     getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:    getEnvDurationOrDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleIssuer:   getEnvOrDefault("GOOGLE_ISSUER", "https://accounts.google.com"),

		Reddit: reddit.Config{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			RedirectURI:  os.Getenv("REDDIT_REDIRECT_URI"),
			UserAgent:    getEnvOrDefault("REDDIT_USER_AGENT", "web:contentdeck:v0.1.0"),
			APIURL:       getEnvOrDefault("REDDIT_API_URL", reddit.DefaultAPIURL),
			AuthURL:      getEnvOrDefault("REDDIT_AUTH_URL", reddit.DefaultAuthURL),
			TokenURL:     getEnvOrDefault("REDDIT_TOKEN_URL", reddit.DefaultTokenURL),
		},

		MasterKey: os.Getenv("MASTER_KEY"),

		MetricsInterval:     getEnvDurationOrDefault("METRICS_INTERVAL", service.DefaultMetricsInterval),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		CORSOrigin:          os.Getenv("CORS_ORIGIN"),

		AuthLimit:   httpx.RateLimitFromEnv("AUTH", httpx.AuthLimit),
		RemoteLimit: httpx.RateLimitFromEnv("REMOTE", httpx.RemoteLimit),
		APILimit:    httpx.RateLimitFromEnv("API", httpx.APILimit),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
