package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func captureSlog(t *testing.T, level slog.Level) (*bytes.Buffer, *slog.Logger) {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})
	return &buf, slog.New(handler)
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogAdapterPlanEvent(t *testing.T) {
	buf, logger := captureSlog(t, slog.LevelDebug)
	NewSlogAdapter(logger).Log(Event{
		RunID:    "run-1",
		Category: CategoryPlan,
		Plan: &PlanEvent{
			ActiveTypes: []string{"string"},
			Records:     1,
			Groups:      2,
			RCIErrors:   2,
			PoolSize:    30,
		},
	})

	entry := decodeEntry(t, buf)
	if entry["msg"] != "rci plan" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["run_id"] != "run-1" {
		t.Errorf("run_id = %v", entry["run_id"])
	}
	if entry["pool_size"] != float64(30) {
		t.Errorf("pool_size = %v", entry["pool_size"])
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestSlogAdapterArtifactEventAtInfo(t *testing.T) {
	buf, logger := captureSlog(t, slog.LevelInfo)
	adapter := NewSlogAdapter(logger)

	// Debug-level events are filtered by an Info handler.
	adapter.Log(Event{Category: CategoryArtifact, Artifact: &ArtifactEvent{Name: "a.h"}})
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	adapter.WithLevel(slog.LevelInfo).Log(Event{
		Stage:    StageWrite,
		Category: CategoryArtifact,
		Artifact: &ArtifactEvent{Name: "a.h", Kind: "combined", Size: 10, Unchanged: true},
	})
	entry := decodeEntry(t, buf)
	if entry["name"] != "a.h" || entry["unchanged"] != true {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestSlogAdapterErrorAlwaysLogged(t *testing.T) {
	buf, logger := captureSlog(t, slog.LevelWarn)
	NewSlogAdapter(logger).Log(Event{
		Stage:    StagePlan,
		Category: CategoryError,
		Error:    &ErrorEventData{Stage: StagePlan, Message: "duplicate group", Kind: "model"},
	})

	entry := decodeEntry(t, buf)
	if entry["level"] != "ERROR" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["error_kind"] != "model" {
		t.Errorf("error_kind = %v", entry["error_kind"])
	}
}
