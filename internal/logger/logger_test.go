package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLevelSelection(t *testing.T) {
	l := New("json", "warn")
	if l.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info enabled at warn level")
	}
	if !l.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("warn disabled at warn level")
	}
}

func TestNewDefaults(t *testing.T) {
	l := New("", "bogus")
	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info disabled by default")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug enabled by default")
	}
}
