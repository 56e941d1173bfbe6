package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func newJSON(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: level, Format: "json"}, "test", &buf)
	return l, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-lib")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.name != "test-lib" {
		t.Errorf("expected name 'test-lib', got %q", l.name)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	l, buf := newJSON(t, "debug")
	l.Info("hello", Fields("op", "zip"))

	m := decodeLine(t, buf)
	if m["message"] != "hello" {
		t.Errorf("expected message 'hello', got %v", m["message"])
	}
	if m["logger"] != "test" {
		t.Errorf("expected logger 'test', got %v", m["logger"])
	}
	if m["op"] != "zip" {
		t.Errorf("expected op 'zip', got %v", m["op"])
	}
	if m["level"] != "info" {
		t.Errorf("expected level 'info', got %v", m["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newJSON(t, "warn")
	l.Debug("dropped")
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := newJSON(t, "invalid-level")
	l.Debug("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered at info, got %q", buf.String())
	}
	l.Info("kept")
	if buf.Len() == 0 {
		t.Error("expected info line")
	}
}

func TestDisabledLevel(t *testing.T) {
	l, buf := newJSON(t, "disabled")
	l.Error("nothing")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := newJSON(t, "info")
	cl := l.WithComponent("race")
	if cl.name != "test" {
		t.Errorf("name should be preserved, got %q", cl.name)
	}
	cl.Info("msg")
	m := decodeLine(t, buf)
	if m[FieldComponent] != "race" {
		t.Errorf("expected component 'race', got %v", m[FieldComponent])
	}
}

func TestWithFieldsAndError(t *testing.T) {
	l, buf := newJSON(t, "info")
	l.WithFields(map[string]interface{}{FieldCursorID: "c-1"}).
		WithError(fmt.Errorf("boom")).
		Error("failed")

	m := decodeLine(t, buf)
	if m[FieldCursorID] != "c-1" {
		t.Errorf("expected cursor_id 'c-1', got %v", m[FieldCursorID])
	}
	if m["error"] != "boom" {
		t.Errorf("expected error 'boom', got %v", m["error"])
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "svc", &buf)
	l.Warn("careful")
	out := buf.String()
	if !strings.Contains(out, "[WRN]") {
		t.Errorf("expected [WRN] tag, got %q", out)
	}
	if !strings.Contains(out, "careful") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("discarded")
	l.WithComponent("x").Info("discarded")
}

func TestGlobalLogger(t *testing.T) {
	prev := globalLogger.Load()
	defer globalLogger.Store(prev)

	globalLogger.Store(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected no-op default logger")
	}

	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}

	var buf bytes.Buffer
	SetGlobalLogger(NewWithWriter(&Config{Level: "debug", Format: "json"}, "g", &buf))
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	WithComponent("executor").Info("c")
	if got := strings.Count(buf.String(), "\n"); got != 5 {
		t.Errorf("expected 5 lines, got %d: %q", got, buf.String())
	}
}

func TestInit(t *testing.T) {
	prev := globalLogger.Load()
	defer globalLogger.Store(prev)

	Init(Config{Level: "error", Format: "json", Output: "stdout"})
	if globalLogger.Load() == nil {
		t.Fatal("expected global logger to be set after Init")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"disabled", Config{Level: "disabled", Format: "pretty"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{
			"key-value pairs",
			[]interface{}{"op", "race", "index", 2},
			map[string]interface{}{"op": "race", "index": 2},
		},
		{
			"odd number of args",
			[]interface{}{"op", "zip", "trailing"},
			map[string]interface{}{"op": "zip"},
		},
		{
			"non-string key skipped",
			[]interface{}{123, "value", "key", "val"},
			map[string]interface{}{"key": "val"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Errorf("expected %d fields, got %d", len(tc.expected), len(result))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestErrorFields(t *testing.T) {
	fields := ErrorFields("race.close", fmt.Errorf("upstream broke"))
	if fields[FieldOperation] != "race.close" {
		t.Errorf("expected operation 'race.close', got %v", fields[FieldOperation])
	}
	if fields[FieldError] != "upstream broke" {
		t.Errorf("expected error 'upstream broke', got %v", fields[FieldError])
	}
}

func TestDurationFields(t *testing.T) {
	fields := DurationFields("pull", 150*time.Millisecond)
	if fields[FieldOperation] != "pull" {
		t.Errorf("expected operation 'pull', got %v", fields[FieldOperation])
	}
	if fields[FieldDuration] != int64(150) {
		t.Errorf("expected duration 150, got %v", fields[FieldDuration])
	}
}
