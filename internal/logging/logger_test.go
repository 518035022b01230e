package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miniapp-factory/square-invasion/internal/config"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(config.LogSettings{Level: "info"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hidden")
	log.Sugar().Infow("match started", "session", 3)
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line written at info level")
	}
	for _, want := range []string{"INFO", "match started", `"session": 3`, "logger_test.go:"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.LogSettings{Level: "chatty"})
	if !errors.Is(err, config.ErrInvalidSettings) {
		t.Fatalf("New error = %v, want ErrInvalidSettings", err)
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := New(config.LogSettings{File: path, Level: "debug", MaxSizeMB: 1})
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("spawned enemy")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "spawned enemy") {
		t.Fatalf("log file = %q", data)
	}
}
