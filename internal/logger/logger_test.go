package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if got, want := Path(configDir), filepath.Join(logDir, "manifest.log"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}
}

func TestSetOutputCapturesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() { Logger = nil }()

	Warn("image generation failed", "goal", "g-1")

	out := buf.String()
	if !strings.Contains(out, "image generation failed") || !strings.Contains(out, "g-1") {
		t.Errorf("log output missing message or keyvals: %q", out)
	}
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	Logger = nil
	Debug("noop")
	Info("noop")
	Warn("noop")
	Error("noop")
}
