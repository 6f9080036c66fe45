// ABOUTME: Shell settings stored as JSON next to the data directory.
// ABOUTME: SCSNIP_* environment variables, or a .env file beside the config, override the file.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harper/scsnip/internal/apperror"
	"github.com/harper/scsnip/internal/dispatch"
	"github.com/joho/godotenv"
)

// Config holds settings used by the CLI and MCP shells. The core packages
// never read it directly.
type Config struct {
	// OSCHost is where the interpreter listens (default: 127.0.0.1)
	OSCHost string `json:"osc_host"`

	// OSCPort is the interpreter's language port (default: 57120)
	OSCPort int `json:"osc_port"`

	// SclangPath points at the sclang binary. Optional.
	SclangPath string `json:"sclang_path,omitempty"`

	// Editor overrides $EDITOR for add and edit.
	Editor string `json:"editor,omitempty"`
}

// Keys lists the settable keys in display order.
var Keys = []string{"osc_host", "osc_port", "sclang_path", "editor"}

func DefaultConfig() *Config {
	return &Config{
		OSCHost: dispatch.DefaultHost,
		OSCPort: dispatch.DefaultPort,
	}
}

// Load reads the config at path, returning defaults if it does not exist.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	dotenv, err := readDotenv(filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg, lookupWith(dotenv)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads only the file at path, without environment overrides. Use
// it when the result will be written back.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, apperror.IO("read config", path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, apperror.Decode(path, err)
		}
	}

	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return apperror.IO("save config", path, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return apperror.IO("save config", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	return c.Dispatch().Validate()
}

// Dispatch returns the dispatcher settings.
func (c *Config) Dispatch() dispatch.Config {
	return dispatch.Config{Host: c.OSCHost, Port: c.OSCPort}
}

// Get returns the value of key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "osc_host":
		return c.OSCHost, nil
	case "osc_port":
		return strconv.Itoa(c.OSCPort), nil
	case "sclang_path":
		return c.SclangPath, nil
	case "editor":
		return c.Editor, nil
	}
	return "", unknownKey(key)
}

// Set parses value into key. Paths starting with ~ are expanded. On error the
// config is left unchanged.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	next := *c
	switch key {
	case "osc_host":
		next.OSCHost = value
	case "osc_port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return apperror.InvalidArgument("set osc_port", fmt.Sprintf("%q is not a number", value))
		}
		next.OSCPort = port
	case "sclang_path":
		next.SclangPath = expandPath(value)
	case "editor":
		next.Editor = value
	default:
		return unknownKey(key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func unknownKey(key string) error {
	return apperror.InvalidArgument("config", fmt.Sprintf("unknown key %q (want one of %s)", key, strings.Join(Keys, ", ")))
}

func readDotenv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, apperror.Decode(path, err)
	}
	return env, nil
}

// lookupWith prefers the process environment and falls back to values read
// from a .env file.
func lookupWith(dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) error {
	if v := getenv("SCSNIP_HOST"); v != "" {
		cfg.OSCHost = v
	}
	if v := getenv("SCSNIP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return apperror.InvalidArgument("SCSNIP_PORT", fmt.Sprintf("%q is not a number", v))
		}
		cfg.OSCPort = port
	}
	if v := getenv("SCSNIP_SCLANG"); v != "" {
		cfg.SclangPath = expandPath(v)
	}
	if v := getenv("SCSNIP_EDITOR"); v != "" {
		cfg.Editor = v
	}
	return nil
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
