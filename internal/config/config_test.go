package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server != defaultServer {
		t.Fatalf("Server = %q, want %q", cfg.Server, defaultServer)
	}
	if cfg.CacheDir == "" {
		t.Fatal("CacheDir should default")
	}
	if cfg.NaiveTimezone != "local" {
		t.Fatalf("NaiveTimezone = %q, want local", cfg.NaiveTimezone)
	}
	if cfg.PollInterval() != time.Duration(defaultPollSeconds)*time.Second {
		t.Fatalf("PollInterval = %v", cfg.PollInterval())
	}
}

func TestLoad_ReadsAllFields(t *testing.T) {
	cacheDir := t.TempDir()
	path := writeConfig(t, `
server = "tempo.example.com:9000"
token = "abc123"
cache_dir = "`+cacheDir+`"
poll_seconds = 15
naive_timezone = "utc"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server != "tempo.example.com:9000" {
		t.Fatalf("Server = %q", cfg.Server)
	}
	if cfg.Token != "abc123" {
		t.Fatalf("Token = %q", cfg.Token)
	}
	if cfg.CacheDir != cacheDir {
		t.Fatalf("CacheDir = %q, want %q", cfg.CacheDir, cacheDir)
	}
	if cfg.PollInterval() != 15*time.Second {
		t.Fatalf("PollInterval = %v, want 15s", cfg.PollInterval())
	}
	if cfg.NaiveLocation() != time.UTC {
		t.Fatalf("NaiveLocation = %v, want UTC", cfg.NaiveLocation())
	}
}

func TestLoad_RejectsBadTimezonePolicy(t *testing.T) {
	path := writeConfig(t, `naive_timezone = "mars"`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted invalid naive_timezone")
	}
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `server = [broken`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestExpandPath_Home(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := expandPath("~/x/y.toml")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "x", "y.toml")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}
