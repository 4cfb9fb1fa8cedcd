package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frenchcert/frenchcert/pkg/logging"
)

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{logging.Level("verbose"), slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := tt.level.ToSlogLevel(); got != tt.want {
			t.Errorf("%q.ToSlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestValidate_Invalid(t *testing.T) {
	if err := logging.Level("verbose").Validate(); err == nil {
		t.Error("Level.Validate() should fail for verbose")
	}
	if err := logging.Format("xml").Validate(); err == nil {
		t.Error("Format.Validate() should fail for xml")
	}
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}, &buf)

	logger.Debug("hidden")
	logger.Info("listed", "resource", "certifications")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["resource"] != "certifications" {
		t.Errorf("resource = %v", entry["resource"])
	}
}

func TestNewWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&logging.Config{Level: logging.LevelDebug, Format: logging.FormatText}, &buf)

	logger.Debug("shown")
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "debug")

	cfg := &logging.Config{}
	if err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want text", cfg.Format)
	}

	bad := &logging.Config{Level: "loud"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() should fail for an invalid level")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := &logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}
	cfg.Merge(&logging.Config{Format: logging.FormatJSON})

	if cfg.Level != logging.LevelInfo || cfg.Format != logging.FormatJSON {
		t.Errorf("Merge() = %+v", cfg)
	}
}

func TestOpen(t *testing.T) {
	var fallback bytes.Buffer
	w, closeFn, err := logging.Open(&logging.Config{}, &fallback)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if w != &fallback {
		t.Error("Open() without a file should return the fallback")
	}
	if err := closeFn(); err != nil {
		t.Errorf("close() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "logs", "admin.log")
	w, closeFn, err = logging.Open(&logging.Config{File: path}, &fallback)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	logging.NewWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}, w).Info("saved", "resource", "pages")
	closeFn()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "resource=pages") {
		t.Errorf("file = %q", content)
	}
	if fallback.Len() != 0 {
		t.Errorf("fallback written: %q", fallback.String())
	}
}

func TestConfig_SourceFromEnv(t *testing.T) {
	t.Setenv("TEST_LOG_SOURCE", "true")

	cfg := &logging.Config{}
	if err := cfg.Finalize(&logging.Env{Source: "TEST_LOG_SOURCE"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if !cfg.WithSource() {
		t.Error("WithSource() = false, want true")
	}

	var buf bytes.Buffer
	logging.NewWriter(cfg, &buf).Info("traced")
	if !strings.Contains(buf.String(), "source=") {
		t.Errorf("output = %q", buf.String())
	}

	t.Setenv("TEST_LOG_SOURCE", "sometimes")
	if err := (&logging.Config{}).Finalize(&logging.Env{Source: "TEST_LOG_SOURCE"}); err == nil {
		t.Error("Finalize() should fail for an invalid source flag")
	}
}
