package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: FormatJSON}
	return NewWithWriter(cfg, "test-svc", &buf), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &out), "log line is not JSON: %q", line)
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	require.NotNil(t, l)
	assert.Equal(t, "test-svc", l.service)
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithComponent("handler").Error("request failed", Fields("status", 500))

	out := decodeLine(t, buf)
	assert.Equal(t, "request failed", out["message"])
	assert.Equal(t, "handler", out[FieldComponent])
	assert.Equal(t, "test-svc", out[FieldService])
	assert.Equal(t, float64(500), out["status"])
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	l, buf := newJSONLogger(t, "warn")
	l.Info("dropped")
	assert.Zero(t, buf.Len(), "info should be filtered at warn level")
	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewInvalidLevel(t *testing.T) {
	l, buf := newJSONLogger(t, "invalid-level")
	l.Info("still logged")
	assert.Contains(t, buf.String(), "still logged", "invalid level falls back to info")
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Error("nothing")
		l.WithComponent("x").Warn("nothing")
	})
}

func TestWithContext(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	ctx := context.WithValue(context.Background(), ContextKeyRequestID, "req-1")
	l.WithContext(ctx).Info("hello")

	assert.Equal(t, "req-1", decodeLine(t, buf)[FieldRequestID])
}

func TestWithFields(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithFields(map[string]interface{}{"key": "value"}).Info("x")
	assert.Equal(t, "value", decodeLine(t, buf)["key"])
}

func TestWithError(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithError(fmt.Errorf("boom")).Info("x")
	assert.Equal(t, "boom", decodeLine(t, buf)["error"])
}

func TestGlobalLogger(t *testing.T) {
	globalLogger = nil
	require.NotNil(t, GetGlobalLogger(), "default global logger should be created")

	l := Nop()
	SetGlobalLogger(l)
	assert.Same(t, l, GetGlobalLogger())

	assert.NotPanics(t, func() {
		Debug("debug msg")
		Info("info msg")
		Warn("warn msg")
		Error("error msg")
		_ = WithComponent("c")
	})
}

func TestInit(t *testing.T) {
	Init(Config{Level: "info", Format: FormatJSON, Output: "stdout"}, "init-svc")
	assert.Equal(t, "init-svc", GetGlobalLogger().service)
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "test-svc", &buf)
	l.Warn("careful")
	assert.Contains(t, buf.String(), "[TES][WRN]")
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, FormatConsole, cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.True(t, cfg.Timestamp)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
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
			[]interface{}{"op", "save", "id", 42},
			map[string]interface{}{"op": "save", "id": 42},
		},
		{
			"odd number of args",
			[]interface{}{"op", "save", "trailing"},
			map[string]interface{}{"op": "save"},
		},
		{
			"non-string key skipped",
			[]interface{}{123, "value", "key", "val"},
			map[string]interface{}{"key": "val"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Fields(tc.input...))
		})
	}
}

func TestErrorFields(t *testing.T) {
	fields := ErrorFields("create-user", fmt.Errorf("something broke"))

	assert.Equal(t, "create-user", fields[FieldOperation])
	assert.Equal(t, "something broke", fields[FieldError])
}
