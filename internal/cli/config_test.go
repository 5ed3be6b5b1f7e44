package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evcraddock/date-invite/internal/client"
)

func TestConfigSaveAndLoad(t *testing.T) {
	// Use a temp dir as home
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfg := CLIConfig{ServerURL: "http://myhost:9090"}

	if err := saveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	path := filepath.Join(tmp, ".config", "di", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not found: %v", err)
	}

	loaded, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ServerURL != cfg.ServerURL {
		t.Errorf("server_url = %q, want %q", loaded.ServerURL, cfg.ServerURL)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg.ServerURL != "" {
		t.Error("expected zero-value config for missing file")
	}
}

func TestConfigLoadInvalid(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	path := filepath.Join(tmp, ".config", "di", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("server_url: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGetServerURLFromEnv(t *testing.T) {
	t.Setenv("DI_API_URL", "http://custom:1234")
	t.Setenv("HOME", t.TempDir())

	if url := getServerURL(); url != "http://custom:1234" {
		t.Errorf("url = %q, want %q", url, "http://custom:1234")
	}
}

func TestGetServerURLFromConfig(t *testing.T) {
	t.Setenv("DI_API_URL", "")
	t.Setenv("HOME", t.TempDir())

	if err := saveConfig(CLIConfig{ServerURL: "http://fromconfig:7000"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if url := getServerURL(); url != "http://fromconfig:7000" {
		t.Errorf("url = %q, want %q", url, "http://fromconfig:7000")
	}
}

func TestGetServerURLDefault(t *testing.T) {
	t.Setenv("DI_API_URL", "")
	t.Setenv("HOME", t.TempDir())

	if url := getServerURL(); url != client.DefaultBaseURL {
		t.Errorf("url = %q, want %q", url, client.DefaultBaseURL)
	}
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("DI_API_URL", "")
	t.Setenv("HOME", t.TempDir())

	out, err := executeCommand("config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "not configured") {
		t.Errorf("output = %q, want not configured", out)
	}

	if _, err := executeCommand("config", "set-server", "http://example.test:5000"); err != nil {
		t.Fatalf("set-server: %v", err)
	}

	out, err = executeCommand("config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "Effective:   http://example.test:5000") {
		t.Errorf("output = %q, want stored server", out)
	}
}
