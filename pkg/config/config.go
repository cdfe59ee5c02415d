package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultUsername is the identity aggregated when GITHUB_USERNAME is unset.
const DefaultUsername = "Himanshuch01"

// Config holds the environment-provided configuration for the backend.
type Config struct {
	Port string

	// GitHub Authentication - Token OR App
	GitHubToken     string
	GitHubUsername  string
	GitHubAppID     int64
	GitHubInstallID int64
	GitHubKeyPath   string
	GitHubBaseURL   string

	// Upstream response caching
	CacheTTL time.Duration

	// Contact relay
	GmailUser        string
	GmailAppPassword string
	SMTPHost         string
	SMTPPort         int
}

// Load reads the configuration from the environment, loading a .env file
// first when one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		GitHubToken:      strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		GitHubUsername:   strings.TrimSpace(getEnv("GITHUB_USERNAME", DefaultUsername)),
		GitHubAppID:      getEnvInt64("GITHUB_APP_ID", 0),
		GitHubInstallID:  getEnvInt64("GITHUB_INSTALLATION_ID", 0),
		GitHubKeyPath:    os.Getenv("GITHUB_APP_KEY_PATH"),
		GitHubBaseURL:    os.Getenv("GITHUB_BASE_URL"),
		CacheTTL:         getEnvDuration("CACHE_TTL", time.Hour),
		GmailUser:        os.Getenv("GMAIL_USER"),
		GmailAppPassword: os.Getenv("GMAIL_APP_PASSWORD"),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.ParseInt(val, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
