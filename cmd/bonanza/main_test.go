package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/bash-bonanza/internal/registry"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "browser-bash") || !strings.Contains(out, "Browser Bash Bonanza") {
		t.Errorf("list output missing builtin campaign:\n%s", out)
	}
}

func TestLevelsCommand(t *testing.T) {
	out, err := execute(t, "levels", "browser-bash")
	if err != nil {
		t.Fatalf("levels failed: %v", err)
	}
	if !strings.Contains(out, "5 levels, 100 points") {
		t.Errorf("levels output missing totals:\n%s", out)
	}
	if !strings.Contains(out, "1. ") || !strings.Contains(out, "hints:") {
		t.Errorf("levels output missing missions:\n%s", out)
	}

	if _, err := execute(t, "levels", "missing"); !errors.Is(err, registry.ErrUnknownCampaign) {
		t.Errorf("levels missing = %v, expected ErrUnknownCampaign", err)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(good, []byte("id: tiny\nlevels:\n  - level: 1\n    description: Wave.\n    points: 1\n    commands:\n      - match: wave\n        response: Hi!\n        success: true\n"), 0o600)
	os.WriteFile(bad, []byte("id: broken\nlevels: []\n"), 0o600)

	out, err := execute(t, "validate", good)
	if err != nil {
		t.Fatalf("validate good failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "tiny, 1 levels, 1 points") {
		t.Errorf("validate output = %q", out)
	}

	out, err = execute(t, "validate", good, bad)
	if !errors.Is(err, errInvalidFiles) {
		t.Errorf("validate bad = %v, expected errInvalidFiles", err)
	}
	if !strings.Contains(out, "FAIL  "+bad) {
		t.Errorf("validate output missing failure:\n%s", out)
	}
}

func TestScoresCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "scores", "browser-bash", "--db", db)
	if err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	if !strings.Contains(out, "No runs recorded yet.") {
		t.Errorf("scores output = %q", out)
	}
}
