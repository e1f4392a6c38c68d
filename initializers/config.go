package initializers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultRetryBudget    = 3
)

// Config carries everything the storefront needs to talk to the backend.
type Config struct {
	// BaseURL is the single configured origin of the REST API.
	BaseURL string
	// RequestTimeout applies to every request issued by the client.
	RequestTimeout time.Duration
	// SessionFile is where the token/user slots are persisted.
	SessionFile string
	// RetryBudget is the default total attempt budget for retryable
	// requests (rate-limited uploads, product saves).
	RetryBudget int
}

// LoadConfig reads configuration from the environment. API_BASE_URL is
// required; everything else has a sensible default.
func LoadConfig() (Config, error) {
	cfg := Config{
		BaseURL:        os.Getenv("API_BASE_URL"),
		RequestTimeout: defaultRequestTimeout,
		SessionFile:    os.Getenv("SESSION_FILE"),
		RetryBudget:    defaultRetryBudget,
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is not set")
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS: %q", v)
		}
		cfg.RequestTimeout = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv("RETRY_BUDGET"); v != "" {
		retries, err := strconv.Atoi(v)
		if err != nil || retries <= 0 {
			return Config{}, fmt.Errorf("invalid RETRY_BUDGET: %q", v)
		}
		cfg.RetryBudget = retries
	}

	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot locate home directory for session file: %w", err)
		}
		cfg.SessionFile = filepath.Join(home, ".storefront", "session.json")
	}

	return cfg, nil
}
