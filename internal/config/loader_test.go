package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("embedded config differs from DefaultConfig():\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "log_level: debug\nfollowup_delay: 2s\nssh:\n  address: \":2222\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, expected debug", cfg.LogLevel)
	}
	if cfg.FollowupDelay != 2*time.Second {
		t.Errorf("FollowupDelay = %v, expected 2s", cfg.FollowupDelay)
	}
	if cfg.SSH.Address != ":2222" {
		t.Errorf("SSH.Address = %q", cfg.SSH.Address)
	}
	// Unset keys keep defaults
	if cfg.SSH.IdleTimeout != 30*time.Minute {
		t.Errorf("SSH.IdleTimeout = %v, expected default", cfg.SSH.IdleTimeout)
	}
	if cfg.DBPath != "~/.bonanza/runs.db" {
		t.Errorf("DBPath = %q, expected default", cfg.DBPath)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("followup_delay: [1, 2]\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed file should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BONANZA_DB_PATH", "/tmp/runs.db")
	t.Setenv("BONANZA_FOLLOWUP_DELAY", "1500ms")
	t.Setenv("BONANZA_SSH_ADDRESS", ":9000")
	t.Setenv("BONANZA_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DBPath != "/tmp/runs.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.FollowupDelay != 1500*time.Millisecond {
		t.Errorf("FollowupDelay = %v", cfg.FollowupDelay)
	}
	if cfg.SSH.Address != ":9000" {
		t.Errorf("SSH.Address = %q", cfg.SSH.Address)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled should be true")
	}
	if cfg.Telemetry.ServiceName != "bash-bonanza" {
		t.Errorf("Telemetry.ServiceName = %q, expected default", cfg.Telemetry.ServiceName)
	}
}

func TestEnvInvalidValue(t *testing.T) {
	t.Setenv("BONANZA_FOLLOWUP_DELAY", "soon")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("ApplyEnv() should reject an invalid duration")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("BONANZA_PLAYER=neo\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	t.Setenv("BONANZA_PLAYER", "")
	os.Unsetenv("BONANZA_PLAYER")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}
	if got := os.Getenv("BONANZA_PLAYER"); got != "neo" {
		t.Errorf("BONANZA_PLAYER = %q, expected neo", got)
	}

	// Missing files are ignored
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "none.env")); err != nil {
		t.Errorf("LoadDotEnv() of missing file failed: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.bonanza/runs.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if !strings.HasPrefix(got, home) || !strings.HasSuffix(got, filepath.Join(".bonanza", "runs.db")) {
		t.Errorf("ExpandHome() = %q", got)
	}

	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}
