// Package config reads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application settings. It is read once at startup and
// treated as immutable.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	CookieSecure bool
	BcryptCost   int

	// QuestionBankPath overrides the embedded question bank when set.
	QuestionBankPath string

	CoachTypingDelay   time.Duration
	CoachRatePerMinute int
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the Config from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnvString("PORT", "8080"),
		DatabasePath:     getEnvString("DATABASE_PATH", "interview-prep.db"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		QuestionBankPath: os.Getenv("QUESTION_BANK_PATH"),
		// Default to secure cookies; disable only for local development.
		CookieSecure: os.Getenv("COOKIE_SECURE") != "false",
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	var err error
	if cfg.BcryptCost, err = getEnvInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 14 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cfg.BcryptCost)
	}

	if cfg.CoachTypingDelay, err = getEnvDuration("COACH_TYPING_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.CoachTypingDelay < 0 {
		return nil, fmt.Errorf("COACH_TYPING_DELAY must not be negative, got %s", cfg.CoachTypingDelay)
	}

	if cfg.CoachRatePerMinute, err = getEnvInt("COACH_RATE_PER_MINUTE", 20); err != nil {
		return nil, err
	}
	if cfg.CoachRatePerMinute < 1 {
		return nil, fmt.Errorf("COACH_RATE_PER_MINUTE must be at least 1, got %d", cfg.CoachRatePerMinute)
	}

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
