package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Generation API
	GenerationAPIURL     string
	GenerationAPIKey     string
	GenerationTimeout    time.Duration
	GenerationRetryCount int

	// Publish
	InstagramPublishURL  string
	LinkedInPublishURL   string
	TwitterPublishURL    string
	PublishTimeout       time.Duration
	PublishMaxConcurrent int

	// Source fetch
	SourceFetchTimeout time.Duration
	SourceFetchMaxSize int64

	// Session
	SessionSecret string
	SessionMaxAge int

	// Rate Limit
	RateLimitGeneral    int
	RateLimitGeneration int

	// Server
	ServerPort  string
	MetricsPort string
	BaseURL     string

	// Cookie
	CookieSecure bool
	CookieDomain string

	// CORS
	CORSAllowedOrigin string

	// Cleanup
	CleanupInterval time.Duration
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.GenerationAPIURL = os.Getenv("GENERATION_API_URL")
	if cfg.GenerationAPIURL == "" {
		missing = append(missing, "GENERATION_API_URL")
	}

	cfg.GenerationAPIKey = os.Getenv("GENERATION_API_KEY")
	if cfg.GenerationAPIKey == "" {
		missing = append(missing, "GENERATION_API_KEY")
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		missing = append(missing, "BASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.GenerationTimeout = getEnvDuration("GENERATION_TIMEOUT", 60*time.Second)
	cfg.GenerationRetryCount = getEnvInt("GENERATION_RETRY_COUNT", 2)
	cfg.InstagramPublishURL = getEnvString("INSTAGRAM_PUBLISH_URL", "https://graph.instagram.example/v1/media")
	cfg.LinkedInPublishURL = getEnvString("LINKEDIN_PUBLISH_URL", "https://api.linkedin.example/v2/posts")
	cfg.TwitterPublishURL = getEnvString("TWITTER_PUBLISH_URL", "https://api.twitter.example/2/tweets")
	cfg.PublishTimeout = getEnvDuration("PUBLISH_TIMEOUT", 30*time.Second)
	cfg.PublishMaxConcurrent = getEnvInt("PUBLISH_MAX_CONCURRENT", 10)
	cfg.SourceFetchTimeout = getEnvDuration("SOURCE_FETCH_TIMEOUT", 10*time.Second)
	cfg.SourceFetchMaxSize = getEnvInt64("SOURCE_FETCH_MAX_SIZE", 5242880)
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitGeneration = getEnvInt("RATE_LIMIT_GENERATION", 10)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.MetricsPort = getEnvString("METRICS_PORT", "9090")
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	cfg.CleanupInterval = getEnvDuration("CLEANUP_INTERVAL", 1*time.Hour)

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
