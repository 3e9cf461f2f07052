package tlog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestModuleAddsAttribute(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithHandler(slog.NewTextHandler(&buf, nil))
	mod := l.Module("trie")
	mod.Info("hello")

	out := buf.String()
	if !strings.Contains(out, "module=trie") {
		t.Fatalf("expected module=trie in output, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestWithAddsContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithHandler(slog.NewTextHandler(&buf, nil))
	l.With("key", "12").Info("msg")

	if !strings.Contains(buf.String(), "key=12") {
		t.Fatalf("expected key=12 in output, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	l.Debug("should not appear")
	l.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatal("debug message leaked past a Warn-level handler")
	}
	if !strings.Contains(out, "should appear") {
		t.Fatal("warn message missing from output")
	}
}

func TestPackageLevelModule(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewWithHandler(slog.NewTextHandler(&buf, nil)))
	Module("engine").Info("ping")
	if !strings.Contains(buf.String(), "module=engine") {
		t.Fatalf("expected module=engine in output, got %q", buf.String())
	}
}
