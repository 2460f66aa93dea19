package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CommandTimeout != 30*time.Second || cfg.HistoryLimit != 5 || cfg.Devices == nil {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.DataDir != AppDataDir() {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, AppDataDir())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.DataDir = "/srv/sinodroid"
	cfg.CommandTimeout = 5 * time.Second
	cfg.Devices["serial123"] = DeviceConfig{Nickname: "test phone"}
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.DataDir != "/srv/sinodroid" || got.CommandTimeout != 5*time.Second {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Nickname("serial123") != "test phone" {
		t.Errorf("nickname = %q", got.Nickname("serial123"))
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("command_timeout: 90s\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CommandTimeout != 90*time.Second {
		t.Errorf("CommandTimeout = %v", cfg.CommandTimeout)
	}
	if cfg.LogLevel != "info" || cfg.DataDir == "" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestInstallRoot(t *testing.T) {
	cfg := &Config{DataDir: "~/data"}
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, "data", "platform-tools")
	if got := cfg.InstallRoot(); got != want {
		t.Errorf("InstallRoot = %q, want %q", got, want)
	}
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()
	for key, value := range map[string]string{
		"command_timeout": "2m",
		"log_level":       "debug",
		"history_limit":   "8",
		"data_dir":        "/tmp/sd",
	} {
		if err := cfg.Set(key, value); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}
	if cfg.CommandTimeout != 2*time.Minute || cfg.LogLevel != "debug" || cfg.HistoryLimit != 8 || cfg.DataDir != "/tmp/sd" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	bad := map[string]string{
		"command_timeout": "soon",
		"log_level":       "loud",
		"history_limit":   "0",
		"data_dir":        "",
		"no_such_key":     "x",
	}
	for key, value := range bad {
		if err := cfg.Set(key, value); err == nil {
			t.Errorf("Set(%s, %q): expected error", key, value)
		}
	}
}
