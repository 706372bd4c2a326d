// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, env overrides, defaults, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "./fields.db"

logging:
  level: "debug"
  format: "json"

persist:
  prefix: "doc:"
  exclude:
    - "secret"

fields:
  - name: counter
    default: 0
  - name: items
    default: []
  - name: secret
    default: ""
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "./fields.db" {
		t.Errorf("Database.Path: got %q, want %q", cfg.Database.Path, "./fields.db")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Persist.Prefix != "doc:" {
		t.Errorf("Persist.Prefix: got %q, want %q", cfg.Persist.Prefix, "doc:")
	}
	if len(cfg.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(cfg.Fields))
	}
	if cfg.Fields[0].Name != "counter" {
		t.Errorf("Fields[0].Name: got %q, want %q", cfg.Fields[0].Name, "counter")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_DB_DIR", "/tmp/fieldstore-test")

	configPath := writeConfig(t, `
database:
  path: "${TEST_DB_DIR}/fields.db"

fields:
  - name: counter
    default: 0
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/fieldstore-test/fields.db" {
		t.Errorf("env var was not expanded: got %q", cfg.Database.Path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FIELDSTORE_DB_PATH", "/override/fields.db")
	t.Setenv("FIELDSTORE_PREFIX", "env:")

	configPath := writeConfig(t, `
database:
  path: "./fields.db"

persist:
  prefix: "doc:"

fields:
  - name: counter
    default: 0
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/override/fields.db" {
		t.Errorf("FIELDSTORE_DB_PATH override not applied: got %q", cfg.Database.Path)
	}
	if cfg.Persist.Prefix != "env:" {
		t.Errorf("FIELDSTORE_PREFIX override not applied: got %q", cfg.Persist.Prefix)
	}
}

func TestLoad_LoggingDefaults(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "./fields.db"

fields:
  - name: counter
    default: 0
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level default: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format default: got %q, want %q", cfg.Logging.Format, "text")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_MissingDatabasePath(t *testing.T) {
	configPath := writeConfig(t, `
fields:
  - name: counter
    default: 0
`)

	_, err := Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "database.path") {
		t.Errorf("expected database.path validation error, got %v", err)
	}
}

func TestLoad_NoFields(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "./fields.db"
`)

	_, err := Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "field") {
		t.Errorf("expected field validation error, got %v", err)
	}
}

func TestLoad_DuplicateFieldNames(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "./fields.db"

fields:
  - name: counter
    default: 0
  - name: counter
    default: 1
`)

	_, err := Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "more than once") {
		t.Errorf("expected duplicate field error, got %v", err)
	}
}

func TestDescriptorsAndOptions(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "./fields.db"

persist:
  prefix: "doc:"
  include:
    - counter

fields:
  - name: counter
    default: 0
  - name: title
    default: "untitled"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	descs := cfg.Descriptors()
	if len(descs) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(descs))
	}
	if descs[1].Name != "title" || descs[1].Default != "untitled" {
		t.Errorf("descriptor mismatch: %+v", descs[1])
	}

	opts := cfg.Options()
	if opts.Prefix != "doc:" {
		t.Errorf("Options.Prefix: got %q, want %q", opts.Prefix, "doc:")
	}
	if len(opts.Include) != 1 || opts.Include[0] != "counter" {
		t.Errorf("Options.Include: got %v", opts.Include)
	}
}
