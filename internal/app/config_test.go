package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestLoadConfig_RequiresAPIBaseURL(t *testing.T) {
	t.Setenv("ASTRALIS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ASTRALIS_API_BASE_URL", "")

	if _, err := LoadConfig(testLogger(t)); err == nil {
		t.Fatalf("expected error without api base url")
	}
}

func TestLoadConfig_EnvOnlyDefaults(t *testing.T) {
	t.Setenv("ASTRALIS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ASTRALIS_API_BASE_URL", "https://api.astralis.example")
	t.Setenv("ASTRALIS_LISTEN_ADDR", "")
	t.Setenv("ASTRALIS_LOCAL_STORE", "")
	t.Setenv("ASTRALIS_API_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig(testLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.astralis.example" {
		t.Fatalf("unexpected base url %q", cfg.APIBaseURL)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.LocalStore != "astralis.db" {
		t.Fatalf("expected default local store path, got %q", cfg.LocalStore)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("expected default timeout 30s, got %v", cfg.APITimeout)
	}
}

func TestLoadConfig_FileValuesOverriddenByEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "astralis.yaml")
	raw := []byte("api_base_url: https://file.astralis.example\nlisten_addr: \":9000\"\nlocal_store_path: file.db\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ASTRALIS_CONFIG", path)
	t.Setenv("ASTRALIS_API_BASE_URL", "https://env.astralis.example")
	t.Setenv("ASTRALIS_LISTEN_ADDR", "")
	t.Setenv("ASTRALIS_LOCAL_STORE", "")
	t.Setenv("ASTRALIS_API_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig(testLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://env.astralis.example" {
		t.Fatalf("env must win over file, got %q", cfg.APIBaseURL)
	}
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected file listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.LocalStore != "file.db" {
		t.Fatalf("expected file local store path, got %q", cfg.LocalStore)
	}
}

func TestLoadConfig_BadYAMLFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "astralis.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ASTRALIS_CONFIG", path)
	t.Setenv("ASTRALIS_API_BASE_URL", "https://api.astralis.example")

	if _, err := LoadConfig(testLogger(t)); err == nil {
		t.Fatalf("expected parse error")
	}
}
