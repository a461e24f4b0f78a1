package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings pulse needs to reach Garmin Connect.
type Config struct {
	APIBase   string
	AuthBase  string
	TokenPath string
	ExportDir string
	Timeout   time.Duration
}

const (
	defaultConfigPath     = "~/.config/pulse/config.toml"
	defaultAPIBase        = "https://connectapi.garmin.com"
	defaultAuthBase       = "https://connect.garmin.com"
	defaultTokenPath      = "~/.config/pulse/tokens.json"
	defaultExportDir      = "~/.local/share/pulse/exports"
	defaultTimeoutSeconds = 30
)

// Load locates and parses the pulse config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		AuthBase       string `toml:"auth_base"`
		TokenPath      string `toml:"token_path"`
		ExportDir      string `toml:"export_dir"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.AuthBase); v != "" {
		cfg.AuthBase = v
	}
	if v := strings.TrimSpace(raw.TokenPath); v != "" {
		cfg.TokenPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.ExportDir); v != "" {
		cfg.ExportDir = mustExpand(v)
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBase:   defaultAPIBase,
		AuthBase:  defaultAuthBase,
		TokenPath: mustExpand(defaultTokenPath),
		ExportDir: mustExpand(defaultExportDir),
		Timeout:   defaultTimeoutSeconds * time.Second,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
