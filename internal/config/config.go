package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything repolist reads from config.toml.
type Config struct {
	APIURL      string
	Timeout     time.Duration
	UserAgent   string
	NewRepoURL  string
	Locale      string
	StrictLikes bool
	LogFile     string
	LogLevel    slog.Level
	Refresh     time.Duration
	Listen      string
}

const (
	defaultConfigPath = "~/.config/repolist/config.toml"
	defaultAPIURL     = "http://localhost:3333"
	defaultTimeout    = 5 * time.Second
	defaultUserAgent  = "repolist/0.1"
	defaultNewRepoURL = "https://github.com/repolist"
	defaultLocale     = "en"
	defaultLogFile    = "~/.local/state/repolist/repolist.log"
	defaultListen     = "127.0.0.1:3333"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:     defaultAPIURL,
		Timeout:    defaultTimeout,
		UserAgent:  defaultUserAgent,
		NewRepoURL: defaultNewRepoURL,
		Locale:     defaultLocale,
		LogFile:    mustExpand(defaultLogFile),
		LogLevel:   slog.LevelInfo,
		Listen:     defaultListen,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

type rawConfig struct {
	APIURL      string `toml:"api_url"`
	Timeout     string `toml:"timeout"`
	UserAgent   string `toml:"user_agent"`
	NewRepoURL  string `toml:"new_repo_url"`
	Locale      string `toml:"locale"`
	StrictLikes bool   `toml:"strict_likes"`
	LogFile     string `toml:"log_file"`
	LogLevel    string `toml:"log_level"`
	Refresh     string `toml:"refresh"`
	Listen      string `toml:"listen"`
}

// Load reads the config at path (or the default path), falling back to
// defaults when the file is missing. Empty values keep their defaults.
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
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.UserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := strings.TrimSpace(raw.NewRepoURL); v != "" {
		cfg.NewRepoURL = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Locale)); v != "" {
		cfg.Locale = v
	}
	if v := strings.TrimSpace(raw.Listen); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	cfg.StrictLikes = raw.StrictLikes

	if cfg.Timeout, err = parseDuration("timeout", raw.Timeout, cfg.Timeout); err != nil {
		return Config{}, err
	}
	if cfg.Refresh, err = parseDuration("refresh", raw.Refresh, cfg.Refresh); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("parse config: log_level %q: %w", v, err)
		}
	}

	return cfg, nil
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s %q: %w", key, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", key)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
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
