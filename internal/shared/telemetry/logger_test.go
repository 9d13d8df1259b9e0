package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoWritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Use(zap.New(core))
	defer Use(prev)

	Info("survey.submitted", map[string]any{"survey_id": "survey-1", "matches": 2})
	Error("store.failed", map[string]any{"error": errors.New("boom")})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["survey_id"] != "survey-1" {
		t.Fatalf("expected survey_id field, got %v", ctx)
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[1].Level)
	}
	if entries[1].ContextMap()["error"] != "boom" {
		t.Fatalf("expected error field, got %v", entries[1].ContextMap())
	}
}

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "json", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	prev := Use(logger)
	defer Use(prev)

	Warn("logic.cache_miss", map[string]any{"key": "survey:logic"})

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["level"] != "warn" || line["msg"] != "logic.cache_miss" || line["key"] != "survey:logic" {
		t.Fatalf("unexpected log line: %v", line)
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("chatty", "json", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
