// Package config loads folio's settings from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds every setting folio reads at startup.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Log     LogConfig
	Stub    StubConfig
}

// APIConfig locates the portfolio backend and the public site.
type APIConfig struct {
	BaseURL string // backend root, e.g. http://localhost:5000
	Prefix  string // versioned API path, e.g. /api/v1
	SiteURL string // public site, used to open pages in a browser
}

// SessionConfig locates the durable session store.
type SessionConfig struct {
	Path string // SQLite file; empty keeps the session in memory only
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string
	File  string
}

// StubConfig configures the local development backend.
type StubConfig struct {
	Addr     string
	Username string
	Password string
}

// Load builds a Config from the environment, reading .env first if it exists.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // a missing .env is normal

	sessionPath, err := expandHome(getEnv("FOLIO_SESSION_PATH", "~/.folio/session.db"))
	if err != nil {
		return nil, err
	}
	logFile, err := expandHome(getEnv("FOLIO_LOG_FILE", "~/.folio/folio.log"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("FOLIO_API_URL", "http://localhost:5000"), "/"),
			Prefix:  getEnv("FOLIO_API_PREFIX", "/api/v1"),
			SiteURL: strings.TrimRight(getEnv("FOLIO_SITE_URL", "http://localhost:3000"), "/"),
		},
		Session: SessionConfig{
			Path: sessionPath,
		},
		Log: LogConfig{
			Level: getEnv("FOLIO_LOG_LEVEL", "info"),
			File:  logFile,
		},
		Stub: StubConfig{
			Addr:     getEnv("FOLIO_STUB_ADDR", "127.0.0.1:5000"),
			Username: getEnv("FOLIO_STUB_USERNAME", "admin"),
			Password: getEnv("FOLIO_STUB_PASSWORD", "admin"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for name, raw := range map[string]string{"FOLIO_API_URL": c.API.BaseURL, "FOLIO_SITE_URL": c.API.SiteURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid %s %q: want an absolute http(s) URL", name, raw)
		}
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid FOLIO_LOG_LEVEL: %w", err)
	}
	return nil
}

// getEnv reads an environment variable, falling back when it is unset.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
