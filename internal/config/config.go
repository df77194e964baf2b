package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters and is built once at
// startup, then passed into every collaborator constructor.
type Config struct {
	Port string
	Env  string

	DB     DatabaseConfig
	Redis  RedisConfig
	Gemini GeminiConfig
	Resend ResendConfig
	Worker WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// GeminiConfig contains credentials and the ordered model fallback list for
// the generative-language API. An empty APIKey disables the chat endpoint
// (it answers 503) rather than failing startup.
type GeminiConfig struct {
	APIKey string
	Models []string
}

// ResendConfig contains credentials and fixed addressing for the
// transactional email provider. An empty APIKey disables the contact
// endpoint (503) rather than failing startup.
type ResendConfig struct {
	APIKey string
	From   string
	To     []string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	CacheWarmInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Gemini (chat proxy)
	cfg.Gemini = GeminiConfig{
		APIKey: getEnv("GEMINI_API_KEY", ""),
		Models: splitList(getEnv("GEMINI_MODELS", "gemini-2.5-flash,gemini-1.5-flash")),
	}
	if len(cfg.Gemini.Models) == 0 {
		return nil, errors.New("GEMINI_MODELS must name at least one model")
	}

	// Resend (contact form)
	cfg.Resend = ResendConfig{
		APIKey: getEnv("RESEND_API_KEY", ""),
		From:   getEnv("RESEND_FROM", "Swych.ai Contact Form <onboarding@resend.dev>"),
		To:     splitList(getEnv("RESEND_TO", "theswych.ai@gmail.com")),
	}
	if len(cfg.Resend.To) == 0 {
		return nil, errors.New("RESEND_TO must name at least one recipient")
	}

	// Workers (durations)
	var err error
	if cfg.Worker.CacheWarmInterval, err = parseDurationEnv("CACHE_WARM_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid CACHE_WARM_INTERVAL: %w", err)
	}

	// Basic validation for DB parameters — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// splitList splits a comma-separated environment value into trimmed,
// non-empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
