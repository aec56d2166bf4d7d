package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	} {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{" JSON ", FormatJSON},
		{"bogus", DefaultFormat},
	} {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestZeroLoggerDiscards(t *testing.T) {
	var l Logger

	// Must not panic and must not write anywhere.
	l.Trace("trace")
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error", slog.String("k", "v"))

	if l.Level() != DefaultLevel {
		t.Errorf("zero Level() = %v", l.Level())
	}

	if l.Format() != DefaultFormat {
		t.Errorf("zero Format() = %v", l.Format())
	}
}

func TestMakeJSON(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatJSON),
		WithPretty(false),
		WithLevel(LevelDebug),
	)

	l.Debug("expansion done", slog.Int("outputs", 4))

	var record map[string]any

	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if record["msg"] != "expansion done" {
		t.Errorf("msg = %v", record["msg"])
	}

	if record["outputs"] != float64(4) {
		t.Errorf("outputs = %v", record["outputs"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatText),
		WithPretty(false),
		WithLevel(LevelWarn),
	)

	l.Info("hidden")
	l.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info leaked through warn level: %s", out)
	}

	if !strings.Contains(out, "visible") {
		t.Errorf("warn filtered out: %s", out)
	}
}

func TestTraceLevelRendering(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatText),
		WithPretty(false),
		WithLevel(LevelTrace),
		WithTimeLayout("none"),
	)

	l.Trace("deep detail")

	if out := buf.String(); !strings.Contains(out, "TRACE") {
		t.Errorf("trace record did not render TRACE: %s", out)
	}
}

func TestWithAttrs(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithPretty(false)).
		With(slog.String("component", "expander"))

	l.Info("ready")

	if out := buf.String(); !strings.Contains(out, `"component"`) {
		t.Errorf("attached attribute missing: %s", out)
	}
}

func TestWrapOverrides(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelError))
	if l.Level() != LevelError {
		t.Fatalf("Level() = %v", l.Level())
	}

	w := l.Wrap(WithLevel(LevelDebug))
	if w.Level() != LevelDebug {
		t.Fatalf("wrapped Level() = %v", w.Level())
	}

	// The original is unchanged.
	if l.Level() != LevelError {
		t.Fatalf("original mutated: %v", l.Level())
	}
}
