package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recall.yml")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoadAppliesDefaults verifies a minimal config picks up every default.
func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "version: 1\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.URL != DefaultServerURL {
		t.Fatalf("expected default server url, got %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Fatalf("expected default timeout, got %d", cfg.Server.TimeoutSeconds)
	}
	if cfg.UI.Mode != ModeAuto {
		t.Fatalf("expected auto ui mode, got %q", cfg.UI.Mode)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %s", cfg.Timeout())
	}
}

// TestLoadReadsAllFields verifies a fully specified config round-trips.
func TestLoadReadsAllFields(t *testing.T) {
	path := writeConfig(t, `version: 1
server:
  url: "http://quiz.example:9000"
  timeout_seconds: 3
quiz:
  id: " abc123 "
ui:
  mode: plain
  no_color: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.URL != "http://quiz.example:9000" {
		t.Fatalf("unexpected server url %q", cfg.Server.URL)
	}
	if cfg.Quiz.ID != "abc123" {
		t.Fatalf("expected trimmed quiz id, got %q", cfg.Quiz.ID)
	}
	if cfg.UI.Mode != ModePlain || !cfg.UI.NoColor {
		t.Fatalf("unexpected ui config: %+v", cfg.UI)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.Timeout())
	}
}

// TestLoadRejectsUnknownFields verifies strict decoding catches typos.
func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "version: 1\nserverr:\n  url: http://x\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

// TestLoadRejectsMultipleDocuments verifies extra YAML documents fail.
func TestLoadRejectsMultipleDocuments(t *testing.T) {
	path := writeConfig(t, "version: 1\n---\nversion: 1\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Fatalf("expected multiple document error, got %v", err)
	}
}

// TestLoadValidationIssues verifies every invalid field is reported.
func TestLoadValidationIssues(t *testing.T) {
	path := writeConfig(t, `version: 2
server:
  url: "ftp://host"
  timeout_seconds: -1
ui:
  mode: fancy
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"version", "server.url", "server.timeout_seconds", "ui.mode"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("expected %s issue in %q", field, err.Error())
		}
	}
}

// TestLoadOrDefaultWithoutFile falls back to built-in defaults.
func TestLoadOrDefaultWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

// TestLoadOrDefaultFindsDotfile picks up .recall.yml from the working directory.
func TestLoadOrDefaultFindsDotfile(t *testing.T) {
	dir := t.TempDir()
	payload := "version: 1\nquiz:\n  id: saved\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, dir)
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Quiz.ID != "saved" {
		t.Fatalf("expected quiz id from dotfile, got %q", cfg.Quiz.ID)
	}
}

// TestLoadOrDefaultExplicitPathMustExist keeps missing explicit paths fatal.
func TestLoadOrDefaultExplicitPathMustExist(t *testing.T) {
	_, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
