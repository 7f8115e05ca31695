package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  log.Level
	}{
		{"default", false, log.WarnLevel},
		{"debug", true, log.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logDir := filepath.Join(t.TempDir(), "logs")
			if err := Init(Config{Debug: tt.debug, LogDir: logDir}); err != nil {
				t.Fatalf("Init() error: %v", err)
			}
			t.Cleanup(func() { _ = Close() })

			if _, err := os.Stat(logDir); err != nil {
				t.Errorf("log directory was not created: %v", err)
			}
			if Logger == nil {
				t.Fatal("Logger is nil after Init")
			}
			if Logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", Logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestInit_WritesLogFile(t *testing.T) {
	logDir := t.TempDir()
	if err := Init(Config{LogDir: logDir}); err != nil {
		t.Fatal(err)
	}
	Warn("store unreachable", "path", "/tmp/x.db")
	if err := Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(logDir, "timetable.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "store unreachable") {
		t.Errorf("log file = %q", data)
	}
}

func TestHelpersWithoutLogger(t *testing.T) {
	_ = Close()

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestUseWriter(t *testing.T) {
	var buf bytes.Buffer
	UseWriter(&buf, log.InfoLevel)
	t.Cleanup(func() { _ = Close() })

	Debug("hidden")
	Info("moved event", "title", "Standup")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if !strings.Contains(out, "moved event") || !strings.Contains(out, "Standup") {
		t.Errorf("expected message and keyvals in output, got %q", out)
	}

	_ = Close()
	Info("after close")
	if strings.Contains(buf.String(), "after close") {
		t.Error("logged after Close")
	}
}
