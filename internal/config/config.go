package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "sinodroid"

// DeviceConfig stores per-device settings.
type DeviceConfig struct {
	Nickname string `yaml:"nickname,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	// DataDir holds platform-tools and the history database.
	DataDir string `yaml:"data_dir"`
	// ResourceDir is searched first for the bundled platform-tools archive.
	ResourceDir    string                  `yaml:"resource_dir,omitempty"`
	CommandTimeout time.Duration           `yaml:"command_timeout"`
	LogLevel       string                  `yaml:"log_level"`
	LogFile        string                  `yaml:"log_file,omitempty"`
	HistoryLimit   int                     `yaml:"history_limit"`
	Devices        map[string]DeviceConfig `yaml:"devices,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:        AppDataDir(),
		CommandTimeout: 30 * time.Second,
		LogLevel:       "info",
		HistoryLimit:   5,
		Devices:        make(map[string]DeviceConfig),
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the config file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// AppDataDir returns the OS-standard per-user data directory for the app.
func AppDataDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, appName)
		}
		return filepath.Join(home, "AppData", "Local", appName)
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		return filepath.Join(home, ".local", "share", appName)
	}
}

// Load reads the default config file, returning defaults if it doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Devices == nil {
		cfg.Devices = make(map[string]DeviceConfig)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = AppDataDir()
	}
	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	return SaveTo(cfg, ConfigPath())
}

// SaveTo writes the config to path.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ExpandDataDir expands ~ in the data dir path.
func (c *Config) ExpandDataDir() string {
	if len(c.DataDir) > 0 && c.DataDir[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, c.DataDir[1:])
	}
	return c.DataDir
}

// InstallRoot is where platform-tools are extracted.
func (c *Config) InstallRoot() string {
	return filepath.Join(c.ExpandDataDir(), "platform-tools")
}

// Nickname returns the configured nickname for serial, if any.
func (c *Config) Nickname(serial string) string {
	return c.Devices[serial].Nickname
}

// Keys lists the settings accepted by Set.
var Keys = []string{"data_dir", "resource_dir", "command_timeout", "log_level", "log_file", "history_limit"}

// Set assigns a single setting from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data_dir":
		if value == "" {
			return fmt.Errorf("data_dir cannot be empty")
		}
		c.DataDir = value
	case "resource_dir":
		c.ResourceDir = value
	case "command_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("command_timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("command_timeout must not be negative")
		}
		c.CommandTimeout = d
	case "log_level":
		switch value {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("log_level must be one of debug, info, warn, error")
		}
		c.LogLevel = value
	case "log_file":
		c.LogFile = value
	case "history_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("history_limit must be a positive integer")
		}
		c.HistoryLimit = n
	default:
		return fmt.Errorf("unknown key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}
