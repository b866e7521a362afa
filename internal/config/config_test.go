package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DBPath == "" {
		t.Error("expected a default database path")
	}
	if !strings.HasSuffix(cfg.DBPath, "prontuario.db") {
		t.Errorf("unexpected default database path %q", cfg.DBPath)
	}
	if cfg.Format != "text" {
		t.Errorf("expected default format text, got %q", cfg.Format)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected default log level warn, got %q", cfg.LogLevel)
	}
	if cfg.LogJSON {
		t.Error("expected console logging by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PRONTUARIO_DB", "/tmp/clinic.db")
	t.Setenv("PRONTUARIO_FORMAT", "json")
	t.Setenv("PRONTUARIO_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DBPath != "/tmp/clinic.db" {
		t.Errorf("expected PRONTUARIO_DB override, got %q", cfg.DBPath)
	}
	if cfg.Format != "json" {
		t.Errorf("expected format json, got %q", cfg.Format)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestLoad_RejectsBadFormat(t *testing.T) {
	t.Setenv("PRONTUARIO_FORMAT", "xml")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	c := &Config{DBPath: "x.db", Format: "text", LogLevel: "loud"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}
