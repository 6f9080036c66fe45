// ABOUTME: Tests for shell configuration management
// ABOUTME: Verifies config loading, saving, .env files, and environment overrides

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/scsnip/internal/apperror"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SCSNIP_HOST", "SCSNIP_PORT", "SCSNIP_SCLANG", "SCSNIP_EDITOR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.OSCHost != "127.0.0.1" {
		t.Errorf("expected default host 127.0.0.1, got %q", cfg.OSCHost)
	}
	if cfg.OSCPort != 57120 {
		t.Errorf("expected default port 57120, got %d", cfg.OSCPort)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load should not error on missing config, got: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := &Config{OSCHost: "10.0.0.5", OSCPort: 57121, SclangPath: "/usr/bin/sclang", Editor: "nano"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"editor": "vim"}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OSCPort != 57120 || cfg.Editor != "vim" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"osc_port": "nope"`), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, apperror.ErrDecode) {
		t.Errorf("expected decode failure, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCSNIP_HOST", "192.168.1.20")
	t.Setenv("SCSNIP_PORT", "57200")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OSCHost != "192.168.1.20" {
		t.Errorf("expected host override, got %q", cfg.OSCHost)
	}
	if cfg.OSCPort != 57200 {
		t.Errorf("expected port override, got %d", cfg.OSCPort)
	}
}

func TestBadPortOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCSNIP_PORT", "loud")

	_, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if !errors.Is(err, apperror.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestDotenvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SCSNIP_PORT=57300\nSCSNIP_EDITOR=emacs\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SCSNIP_EDITOR", "code")

	cfg, err := Load(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OSCPort != 57300 {
		t.Errorf("expected port from .env, got %d", cfg.OSCPort)
	}
	if cfg.Editor != "code" {
		t.Errorf("process environment should win over .env, got %q", cfg.Editor)
	}
	if _, ok := os.LookupEnv("SCSNIP_PORT"); ok {
		t.Error(".env values must not leak into the process environment")
	}
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCSNIP_HOST", "10.0.0.9")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.OSCHost != "127.0.0.1" {
		t.Errorf("LoadFile should not apply overrides, got %q", cfg.OSCHost)
	}
}

func TestSetAndGet(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"osc_host", "localhost", "localhost"},
		{"osc_port", " 57130 ", "57130"},
		{"sclang_path", "/opt/sc/sclang", "/opt/sc/sclang"},
		{"editor", "hx", "hx"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSetRejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "volume", "11"},
		{"non-numeric port", "osc_port", "abc"},
		{"port out of range", "osc_port", "70000"},
		{"blank host", "osc_host", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)
			if !errors.Is(err, apperror.ErrInvalidArgument) {
				t.Errorf("expected invalid argument, got %v", err)
			}
			if *cfg != *DefaultConfig() {
				t.Errorf("config changed after failed Set: %+v", cfg)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %q", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot get home dir")
	}
	if got := expandPath("~/sc/sclang"); got != filepath.Join(home, "sc", "sclang") {
		t.Errorf("expected home expansion, got %q", got)
	}
}
