// Package config loads application configuration from environment variables.
package config

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// secretKeyBytes is the required decoded length of HOTELHUB_SECRET_KEY.
const secretKeyBytes = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	BackendURL     string        `env:"BACKEND_URL,required,notEmpty"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
	AuthScheme     string        `env:"AUTH_SCHEME"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
	DBPath     string `env:"DB_PATH" envDefault:"hotelhub.db"`

	// SecretKeyRaw is the hex or base64 encoding of the 32-byte session key.
	SecretKeyRaw string `env:"SECRET_KEY"`
	SecretKey    []byte

	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"10m"`
	SecureCookies        bool          `env:"SECURE_COOKIES" envDefault:"false"`

	RegisterURL string `env:"REGISTER_URL" envDefault:"/register"`
}

// HasSecretKey reports whether a persistent session key was configured.
// Without one the composition root generates an ephemeral key and sessions
// do not survive a restart.
func (c *Config) HasSecretKey() bool {
	return len(c.SecretKey) == secretKeyBytes
}

// Load reads a .env file from the working directory when present, then
// HOTELHUB_-prefixed environment variables, and returns a validated Config.
// Variables already set in the environment take precedence over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse()
}

func parse() (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "HOTELHUB_"})
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	u, err := url.Parse(cfg.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("HOTELHUB_BACKEND_URL has invalid URL %q", cfg.BackendURL)
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("HOTELHUB_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.SessionSweepInterval <= 0 {
		return nil, fmt.Errorf("HOTELHUB_SESSION_SWEEP_INTERVAL must be positive, got %s", cfg.SessionSweepInterval)
	}
	if cfg.BackendTimeout <= 0 {
		return nil, fmt.Errorf("HOTELHUB_BACKEND_TIMEOUT must be positive, got %s", cfg.BackendTimeout)
	}

	if cfg.SecretKeyRaw != "" {
		key, err := decodeKey(cfg.SecretKeyRaw)
		if err != nil {
			return nil, fmt.Errorf("HOTELHUB_SECRET_KEY: %w", err)
		}
		cfg.SecretKey = key
	}

	cfg.AuthScheme = strings.TrimSpace(cfg.AuthScheme)

	return &cfg, nil
}

// decodeKey accepts 64 hex characters or standard base64 of 32 bytes.
func decodeKey(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)

	if key, err := hex.DecodeString(raw); err == nil && len(key) == secretKeyBytes {
		return key, nil
	}
	if key, err := base64.StdEncoding.DecodeString(raw); err == nil && len(key) == secretKeyBytes {
		return key, nil
	}
	return nil, fmt.Errorf("must decode (hex or base64) to %d bytes", secretKeyBytes)
}
