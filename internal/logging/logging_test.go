package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "warn", Console: &buf, NoColor: true})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	logger.Info().Msg("quiet message")
	logger.Warn().Msg("loud message")

	out := buf.String()
	if strings.Contains(out, "quiet message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "loud message") {
		t.Error("warn message missing from output")
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sinodroid.log")
	var buf bytes.Buffer
	logger, closer, err := New(Options{File: path, Console: &buf, NoColor: true})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Str("component", "test").Msg("to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"component":"test"`) {
		t.Errorf("log file missing structured field: %s", data)
	}
}
