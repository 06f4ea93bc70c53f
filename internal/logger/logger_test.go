package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"ERROR", zapcore.ErrorLevel},
		{" Warn ", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}

	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Fatalf("ParseLevel(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestUppercaseLevelFiltersDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("ERROR", buf)
	if log.Level() != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %v", log.Level())
	}

	log.Debug("noise", nil)
	log.Warn("still noise", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below error, got %q", buf.String())
	}
	log.Error("signal", nil)
	if !bytes.Contains(buf.Bytes(), []byte(`"level":"error"`)) {
		t.Fatalf("expected error entry, got %q", buf.String())
	}
}

func TestLoggerWritesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("info", buf)

	log.Info("hello", map[string]any{"k": "v"})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("failed to parse json: %v", err)
	}
	if entry["level"] != "info" {
		t.Fatalf("expected level info, got %v", entry["level"])
	}
	if entry["msg"] != "hello" {
		t.Fatalf("expected msg hello, got %v", entry["msg"])
	}
	if entry["k"] != "v" {
		t.Fatalf("expected field k=v, got %v", entry["k"])
	}
	if ts, _ := entry["ts"].(string); ts == "" {
		t.Fatalf("expected ts to be set")
	}
}

func TestLoggerHookSkipsFilteredEntries(t *testing.T) {
	log := NewWithWriter("warn", io.Discard)
	calls := 0
	log.AddHook(func(map[string]any) { calls++ })

	log.Info("quiet", nil)
	log.Error("loud", map[string]any{"iface": "eth0"})
	if calls != 1 {
		t.Fatalf("expected hook to run once, got %d", calls)
	}
}

func TestNewFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netflux.log")
	log, closer, err := NewFile("debug", path)
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	log.Debug("tick skipped", map[string]any{"reason": "no_interface"})
	_ = log.Sync()
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Contains(data, []byte(`"reason":"no_interface"`)) {
		t.Fatalf("expected field in log file, got %s", data)
	}
}

func TestLoggerSkipsDebugBelowLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("info", buf)

	log.Debug("debug", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestLoggerHookReceivesEntry(t *testing.T) {
	log := NewWithWriter("info", io.Discard)

	ch := make(chan map[string]any, 1)
	log.AddHook(func(entry map[string]any) {
		ch <- entry
	})

	log.Warn("warn-msg", map[string]any{"x": "y"})

	select {
	case entry := <-ch:
		if entry["msg"] != "warn-msg" {
			t.Fatalf("expected msg warn-msg, got %v", entry["msg"])
		}
		if entry["level"] != "warn" {
			t.Fatalf("expected level warn, got %v", entry["level"])
		}
		if entry["x"] != "y" {
			t.Fatalf("expected field x=y, got %v", entry["x"])
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("expected hook to be called")
	}
}
