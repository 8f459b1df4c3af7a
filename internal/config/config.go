package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings the storefront console needs.
type Config struct {
	APIBaseURL     string
	Debounce       time.Duration
	RequestTimeout time.Duration
	Refresh        time.Duration
	// AutoRefresh re-issues the current view's fetch at this cadence; zero disables it.
	AutoRefresh time.Duration
	LogFile     string
	LogLevel    string
	Role        string
}

const (
	defaultConfigPath     = "~/.config/storefront/config.toml"
	defaultAPIBaseURL     = "http://127.0.0.1:8080"
	defaultLogFile        = "~/.local/state/storefront/storefront.log"
	defaultLogLevel       = "info"
	defaultRole           = "user"
	defaultDebounceMS     = 700
	defaultTimeoutSeconds = 10
	defaultRefreshMS      = 250
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		APIBaseURL:     defaultAPIBaseURL,
		Debounce:       defaultDebounceMS * time.Millisecond,
		RequestTimeout: defaultTimeoutSeconds * time.Second,
		Refresh:        defaultRefreshMS * time.Millisecond,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		Role:           defaultRole,
	}
}

// Load locates and parses the storefront config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL     string `toml:"api_base_url"`
		DebounceMS     int    `toml:"debounce_ms"`
		TimeoutSeconds int    `toml:"request_timeout_seconds"`
		RefreshMS      int    `toml:"refresh_ms"`
		AutoRefreshSec int    `toml:"auto_refresh_seconds"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		Role           string `toml:"role"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if raw.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if raw.RefreshMS > 0 {
		cfg.Refresh = time.Duration(raw.RefreshMS) * time.Millisecond
	}
	if raw.AutoRefreshSec > 0 {
		cfg.AutoRefresh = time.Duration(raw.AutoRefreshSec) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Role)); v != "" {
		cfg.Role = v
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
