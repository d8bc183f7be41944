package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelTag(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelError, "ERROR"},
		{slog.LevelWarn, "WARN "},
		{slog.LevelInfo, "INFO "},
		{slog.LevelDebug, "DEBUG"},
	}

	for _, tt := range tests {
		if got := levelTag(tt.level); got != tt.expected {
			t.Errorf("levelTag(%v) = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestFormatAttr(t *testing.T) {
	tests := []struct {
		name     string
		group    string
		attr     slog.Attr
		expected string
	}{
		{"plain", "", slog.String("key", "value"), "  key=value"},
		{"grouped", "client", slog.String("key", "value"), "  client.key=value"},
		{"int", "", slog.Int("port", 14004), "  port=14004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAttr(tt.group, tt.attr); got != tt.expected {
				t.Errorf("formatAttr(%q, %v) = %q, want %q", tt.group, tt.attr, got, tt.expected)
			}
		})
	}
}

func newTestHandler(buf *bytes.Buffer) *consoleHandler {
	return &consoleHandler{w: buf, mu: new(sync.Mutex), level: slog.LevelDebug}
}

func TestConsoleHandlerEnabled(t *testing.T) {
	h := &consoleHandler{level: slog.LevelInfo}
	if !h.Enabled(context.Background(), slog.LevelInfo) || !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("info and error should be enabled")
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be filtered")
	}
}

func TestConsoleHandlerHandle(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf)

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test message", 0)
	record.AddAttrs(slog.String("key", "value"))
	if err := h.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	want := "12:00:00 INFO  test message  key=value\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestConsoleHandlerWithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf)

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "client")}).WithGroup("net").WithGroup("tcp")
	if len(h.attrs) != 0 {
		t.Fatal("WithAttrs modified the parent handler")
	}

	record := slog.NewRecord(time.Now(), slog.LevelWarn, "test", 0)
	record.AddAttrs(slog.Int("port", 14004))
	if err := h2.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "component=client") || !strings.Contains(out, "net.tcp.port=14004") {
		t.Fatalf("output = %q", out)
	}
}

func TestNewHandlerFormats(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(Config{Level: "info", Format: "json", Output: &buf})).Info("hello", "n", 1)
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("json output %q: %v", buf.String(), err)
	}
	if rec["msg"] != "hello" {
		t.Fatalf("json record = %v", rec)
	}

	buf.Reset()
	slog.New(newHandler(Config{Level: "warn", Output: &buf})).Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("console handler wrote %q below its level", buf.String())
	}

	if _, ok := newHandler(Config{Format: "text", Output: &buf}).(*slog.TextHandler); !ok {
		t.Fatal("text format did not select slog.TextHandler")
	}
}

func TestOpenOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	w, err := OpenOutput(path)
	if err != nil {
		t.Fatalf("OpenOutput() error = %v", err)
	}
	if _, err := w.Write([]byte("first\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	w.Close()

	w, err = OpenOutput(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	_, _ = w.Write([]byte("second\n"))
	w.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "first\nsecond\n" {
		t.Fatalf("log file = %q, want appended lines", data)
	}

	stderr, err := OpenOutput("-")
	if err != nil {
		t.Fatalf("OpenOutput(-) error = %v", err)
	}
	if err := stderr.Close(); err != nil {
		t.Fatalf("closing stderr output error = %v", err)
	}
}

func TestOpenOutputMissingDir(t *testing.T) {
	if _, err := OpenOutput(filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Fatal("OpenOutput() into a missing directory succeeded")
	}
}
