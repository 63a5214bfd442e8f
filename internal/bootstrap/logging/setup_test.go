package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigureWritesRotatingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "modpanel.log")

	closer, err := Configure(Options{Level: "debug", Format: "json", File: file, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	t.Cleanup(func() {
		SetBase(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	})

	ctx := WithAttrs(context.Background(), slog.String("component", "test"))
	Info(ctx, "hello", slog.Int("n", 1))
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(raw)
	for _, want := range []string{`"msg":"hello"`, `"component":"test"`, `"n":1`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %s", line, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestWithAttrsOverridesByKey(t *testing.T) {
	ctx := WithAttrs(context.Background(), slog.String("a", "1"), slog.String("b", "2"))
	ctx = WithAttrs(ctx, slog.String("a", "3"))

	attrs := Attrs(ctx)
	if len(attrs) != 2 || attrs[0].Value.String() != "3" || attrs[1].Value.String() != "2" {
		t.Fatalf("Attrs() = %v", attrs)
	}
}
