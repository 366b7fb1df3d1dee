package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgconfig "github.com/starford/quicktask/pkg/config"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if cfg.History.Enabled {
		t.Error("history should be disabled by default")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled || cfg.AuthEnabled() {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenMode(t *testing.T) {
	cfg := AuthConfig{Mode: AuthModeToken, Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}

	cfg.Token = ""
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
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestHistoryConfig_PathRequiredWhenEnabled(t *testing.T) {
	cfg := HistoryConfig{Enabled: true}
	if err := cfg.Validate(); err == nil {
		t.Fatal("enabled history without path should fail")
	}
	cfg = HistoryConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled history without path should pass: %v", err)
	}
}

func TestHTTPConfig_Address(t *testing.T) {
	cfg := NewDefaultConfig()
	if got := cfg.App.HTTP.Address(); got != "127.0.0.1:8080" {
		t.Errorf("default address = %q, want loopback", got)
	}
	cfg.App.HTTP.Host = ""
	if got := cfg.App.HTTP.Address(); got != ":8080" {
		t.Errorf("address = %q, want all interfaces", got)
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("out-of-range port should fail")
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("QUICKTASK_TEST_TOKEN", "from-env")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `app:
  log_level: debug
  http:
    port: 9090
obsidian:
  registry_path: /tmp/obsidian.json
history:
  enabled: true
  path: /tmp/history.db
auth:
  mode: token
  token: ${QUICKTASK_TEST_TOKEN}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(path, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.App.HTTP.Address() != "127.0.0.1:9090" {
		t.Errorf("address = %q", cfg.App.HTTP.Address())
	}
	if cfg.App.LogLevel.String() != "DEBUG" {
		t.Errorf("log level = %v", cfg.App.LogLevel)
	}
	if cfg.Obsidian.RegistryPath != "/tmp/obsidian.json" {
		t.Errorf("registry path = %q", cfg.Obsidian.RegistryPath)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/history.db" {
		t.Errorf("history = %+v", cfg.History)
	}
	if cfg.Auth.Token != "from-env" {
		t.Errorf("token = %q, want expanded env value", cfg.Auth.Token)
	}
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(filepath.Join(t.TempDir(), "none.yaml"), cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.App.HTTP.Port != 8080 {
		t.Errorf("port = %d, want default 8080", cfg.App.HTTP.Port)
	}
}
