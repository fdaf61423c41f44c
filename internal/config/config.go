package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string

	RedisAddress  string
	RedisPassword string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	AuthSecret string
	SessionTTL time.Duration

	AdminEmails    []string
	AllowedOrigins []string
}

func Load() *Config {
	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	authSecret := os.Getenv("AUTH_SECRET")
	if authSecret == "" {
		panic("AUTH_SECRET environment variable is required")
	}

	return &Config{
		Port:               getenv("PORT", "8080"),
		DatabaseURL:        dbURL,
		RedisAddress:       getenv("REDIS_ADDRESS", "127.0.0.1:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  getenv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),
		AuthSecret:         authSecret,
		SessionTTL:         getenvDuration("SESSION_TTL", 24*time.Hour),
		AdminEmails:        ParseAdminEmails(os.Getenv("ADMIN_EMAILS")),
		AllowedOrigins:     splitList(getenv("ALLOWED_ORIGINS", "*")),
	}
}

// ParseAdminEmails splits the comma-separated allowlist into trimmed,
// lower-cased entries, dropping blanks.
func ParseAdminEmails(raw string) []string {
	var emails []string
	for _, e := range strings.Split(raw, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

// IsAdminEmail reports whether email is on the allowlist. Pure so the
// promotion fast path is testable without touching the process environment.
func IsAdminEmail(email string, adminEmails []string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range adminEmails {
		if e == email {
			return true
		}
	}
	return false
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
