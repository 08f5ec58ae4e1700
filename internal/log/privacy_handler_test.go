package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPrivacyHandlerMasksKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "fingerprint key", key: "fingerprint", value: "not-even-hex"},
		{name: "uppercase key", key: "Fingerprint", value: "abc"},
		{name: "digest key", key: "digest", value: "whatever"},
		{name: "session id key", key: "session_id", value: "my-session"},
		{name: "sid key", key: "sid", value: "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewPrivacyHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("test", tt.key, tt.value)

			out := buf.String()
			if strings.Contains(out, tt.value) {
				t.Errorf("output contains unmasked value %q: %s", tt.value, out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("output missing mask: %s", out)
			}
		})
	}
}

func TestPrivacyHandlerMasksValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "16 hex chars", value: "a3f2b8c91e04d756"},
		{name: "full sha256", value: strings.Repeat("ab", 32)},
		{name: "uuid", value: "550e8400-e29b-41d4-a716-446655440000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewPrivacyHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("test", "result", tt.value)

			out := buf.String()
			if strings.Contains(out, tt.value) {
				t.Errorf("output contains unmasked value %q: %s", tt.value, out)
			}
		})
	}
}

func TestPrivacyHandlerKeepsOrdinaryAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPrivacyHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("scan complete",
		"detected", 42,
		"backend", "table",
		"font", "Helvetica Neue",
	)

	out := buf.String()
	for _, want := range []string{"detected=42", "backend=table", "Helvetica Neue"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, MaskValue) {
		t.Errorf("ordinary attrs were masked: %s", out)
	}
}

func TestPrivacyHandlerMasksGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPrivacyHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("test", slog.Group("scan",
		slog.String("fingerprint", "a3f2b8c91e04d756"),
		slog.Int("detected", 3),
	))

	out := buf.String()
	if strings.Contains(out, "a3f2b8c91e04d756") {
		t.Errorf("group value not masked: %s", out)
	}
	if !strings.Contains(out, "detected=3") {
		t.Errorf("ordinary group attr missing: %s", out)
	}
}

func TestPrivacyHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPrivacyHandler(slog.NewTextHandler(&buf, nil)))

	logger.With("fingerprint", "a3f2b8c91e04d756").Info("test")

	if strings.Contains(buf.String(), "a3f2b8c91e04d756") {
		t.Errorf("With() attr not masked: %s", buf.String())
	}
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("quiet suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Info("should be hidden")
		logger.Warn("should appear")

		out := buf.String()
		if strings.Contains(out, "should be hidden") {
			t.Errorf("info logged in quiet mode: %s", out)
		}
		if !strings.Contains(out, "should appear") {
			t.Errorf("warning missing: %s", out)
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("debug line")

		if !strings.Contains(buf.String(), "debug line") {
			t.Errorf("debug missing in verbose mode: %s", buf.String())
		}
	})
}

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true)

	logger.Info("scan complete", "fingerprint", "a3f2b8c91e04d756")

	out := buf.String()
	if !strings.HasPrefix(out, "{") {
		t.Errorf("output is not JSON: %s", out)
	}
	if strings.Contains(out, "a3f2b8c91e04d756") {
		t.Errorf("fingerprint not masked in JSON output: %s", out)
	}
}

func TestNewPrivacyHandlerNilFallback(t *testing.T) {
	h := NewPrivacyHandler(nil)
	if h == nil {
		t.Fatal("NewPrivacyHandler(nil) returned nil")
	}
}
