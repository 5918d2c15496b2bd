package internal

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestRecordsPath_DefaultsToVault(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Vault.Path = "/notes"
	if got := cfg.RecordsPath(); got != filepath.Join("/notes", "vault_notes.csv") {
		t.Errorf("records path = %q", got)
	}

	cfg.Records.Path = "/data/records.db"
	if got := cfg.RecordsPath(); got != "/data/records.db" {
		t.Errorf("records path = %q", got)
	}
}

func TestRecordsConfig_Format(t *testing.T) {
	cfg := RecordsConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty format should default to csv: %v", err)
	}
	if cfg.Format != "csv" {
		t.Errorf("format = %q, want csv", cfg.Format)
	}

	cfg = RecordsConfig{Format: "sqlite"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("sqlite should be accepted: %v", err)
	}

	cfg = RecordsConfig{Format: "parquet"}
	if err := cfg.Validate(); err == nil {
		t.Error("unknown format should fail validation")
	}
}

func TestTreeConfig_MaxDepth(t *testing.T) {
	cfg := TreeConfig{MaxDepth: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("zero max depth should fail validation")
	}
	cfg.MaxDepth = 5
	if err := cfg.Validate(); err != nil {
		t.Errorf("max depth 5 should pass: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if !cfg.Watch.Enabled {
		t.Error("watch should be enabled by default")
	}
}
