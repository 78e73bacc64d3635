// Package config loads the daybrief configuration file. Missing files fall
// back to defaults so a fresh install works against a local server with no
// setup.
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

// Config captures everything daybrief needs to reach and interpret the
// Tempo server.
type Config struct {
	Server        string
	Token         string
	CacheDir      string
	PollSeconds   int
	NaiveTimezone string // "local" or "utc"
}

const (
	defaultConfigPath  = "~/.config/daybrief/config.toml"
	defaultCacheDir    = "~/.cache/daybrief"
	defaultServer      = "127.0.0.1:8644"
	defaultPollSeconds = 60
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

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
		Server        string `toml:"server"`
		Token         string `toml:"token"`
		CacheDir      string `toml:"cache_dir"`
		PollSeconds   int    `toml:"poll_seconds"`
		NaiveTimezone string `toml:"naive_timezone"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if s := strings.TrimSpace(raw.Server); s != "" {
		cfg.Server = s
	}
	cfg.Token = strings.TrimSpace(raw.Token)
	if d := strings.TrimSpace(raw.CacheDir); d != "" {
		cfg.CacheDir = d
	}
	cfg.CacheDir = mustExpand(cfg.CacheDir)
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	switch strings.ToLower(strings.TrimSpace(raw.NaiveTimezone)) {
	case "utc":
		cfg.NaiveTimezone = "utc"
	case "", "local":
		cfg.NaiveTimezone = "local"
	default:
		return Config{}, fmt.Errorf("naive_timezone must be %q or %q, got %q", "local", "utc", raw.NaiveTimezone)
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		Server:        defaultServer,
		CacheDir:      mustExpand(defaultCacheDir),
		PollSeconds:   defaultPollSeconds,
		NaiveTimezone: "local",
	}
}

// PollInterval returns the poll cadence as a duration.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return time.Duration(defaultPollSeconds) * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

// NaiveLocation returns the location naive server timestamps should be
// parsed in.
func (c Config) NaiveLocation() *time.Location {
	if c.NaiveTimezone == "utc" {
		return time.UTC
	}
	return time.Local
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
