package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rci-tools/rcigen/pkg/log"
)

var base = time.Date(2026, 3, 4, 10, 15, 32, 123456000, time.UTC)

func sampleEvents() []log.Event {
	return []log.Event{
		{
			Timestamp: base,
			RunID:     "aaaaaaaa-1111-2222-3333-444444444444",
			Stage:     log.StagePlan,
			Category:  log.CategoryPlan,
			Source:    "device.yaml",
			Plan: &log.PlanEvent{
				ActiveTypes: []string{"string", "uint32"},
				Records:     2,
				Union:       true,
				Groups:      1,
				RCIErrors:   2,
				PoolSize:    28,
			},
		},
		{
			Timestamp: base.Add(time.Millisecond),
			RunID:     "aaaaaaaa-1111-2222-3333-444444444444",
			Stage:     log.StageWrite,
			Category:  log.CategoryArtifact,
			Source:    "device.yaml",
			Artifact: &log.ArtifactEvent{
				Name:   "remote_config.h",
				Kind:   "combined",
				Size:   4096,
				Digest: "0e5751c0",
				Path:   "gen/remote_config.h",
			},
		},
		{
			Timestamp: base.Add(time.Second),
			RunID:     "bbbbbbbb-1111-2222-3333-444444444444",
			Stage:     log.StagePlan,
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Stage:   log.StagePlan,
				Message: "model integrity: rci_errors must not be empty",
				Kind:    "model",
			},
		},
	}
}

func writeLog(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.cbor")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestFormatPlanEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[0])
	output := buf.String()

	for _, want := range []string{
		"2026-03-04T10:15:32.123456Z [run:aaaaaaaa] PLAN   Plan\n",
		"  Source: device.yaml\n",
		"  Types: string, uint32\n",
		"  Layout: union, 2 record(s)\n",
		"  Errors: 2 protocol, 0 global\n",
		"  Pool: 28 bytes\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatArtifactEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[1])
	output := buf.String()

	if !strings.Contains(output, "WRITE  Artifact") {
		t.Errorf("expected stage and label, got: %s", output)
	}
	if !strings.Contains(output, "  Name: remote_config.h (combined)\n") {
		t.Errorf("expected artifact name, got: %s", output)
	}
	if !strings.Contains(output, "  Path: gen/remote_config.h\n") {
		t.Errorf("expected path, got: %s", output)
	}
	if strings.Contains(output, "Unchanged") {
		t.Errorf("unexpected Unchanged marker: %s", output)
	}
}

func TestFormatErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[2])
	output := buf.String()

	if !strings.Contains(output, "  Kind: model\n") {
		t.Errorf("expected error kind, got: %s", output)
	}
	if !strings.Contains(output, "rci_errors must not be empty") {
		t.Errorf("expected error message, got: %s", output)
	}
}

func TestRunViewFiltered(t *testing.T) {
	path := writeLog(t, sampleEvents())

	cat := log.CategoryError
	var buf bytes.Buffer
	if err := RunView(path, log.Filter{Category: &cat}, &buf); err != nil {
		t.Fatalf("RunView: %v", err)
	}
	output := buf.String()
	if strings.Count(output, "[run:") != 1 {
		t.Errorf("expected one event, got:\n%s", output)
	}
	if !strings.Contains(output, "[run:bbbbbbbb]") {
		t.Errorf("expected failed run, got:\n%s", output)
	}
}

func TestParseFlags(t *testing.T) {
	if s, err := ParseStageFlag("WRITE"); err != nil || s != log.StageWrite {
		t.Errorf("ParseStageFlag(WRITE) = %v, %v", s, err)
	}
	if _, err := ParseStageFlag("emit"); err == nil {
		t.Error("expected error for unknown stage")
	}
	if c, err := ParseCategoryFlag("artifact"); err != nil || c != log.CategoryArtifact {
		t.Errorf("ParseCategoryFlag(artifact) = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("message"); err == nil {
		t.Error("expected error for unknown category")
	}
	if ts, err := ParseTimeFlag(""); err != nil || ts != nil {
		t.Errorf("ParseTimeFlag(\"\") = %v, %v", ts, err)
	}
	if _, err := ParseTimeFlag("yesterday"); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestExportJSONL(t *testing.T) {
	path := writeLog(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "events.jsonl")

	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatalf("RunExport: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	var event log.Event
	if err := json.Unmarshal([]byte(lines[1]), &event); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if event.Artifact == nil || event.Artifact.Name != "remote_config.h" {
		t.Errorf("unexpected artifact: %+v", event.Artifact)
	}
}

func TestExportCSV(t *testing.T) {
	path := writeLog(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "events.csv")

	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][1] != "run_id" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[2][5] != "remote_config.h" || rows[2][6] != "4096" {
		t.Errorf("unexpected artifact row: %v", rows[2])
	}
	if rows[3][8] != "model" {
		t.Errorf("unexpected error row: %v", rows[3])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := writeLog(t, sampleEvents())
	if err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunFilter(t *testing.T) {
	path := writeLog(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "run.cbor")

	n, err := RunFilter(path, FilterOptions{Output: out, RunID: "aaaaaaaa-1111-2222-3333-444444444444"})
	if err != nil {
		t.Fatalf("RunFilter: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 events, got %d", n)
	}

	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()
	events, err := reader.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[1].Artifact == nil {
		t.Errorf("unexpected filtered events: %+v", events)
	}
}

func TestRunFilterTimeRange(t *testing.T) {
	path := writeLog(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "late.cbor")

	n, err := RunFilter(path, FilterOptions{
		Output:    out,
		TimeStart: base.Add(500 * time.Millisecond).Format(time.RFC3339Nano),
	})
	if err != nil {
		t.Fatalf("RunFilter: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 event, got %d", n)
	}

	if _, err := RunFilter(path, FilterOptions{Output: out, Stage: "emit"}); err == nil {
		t.Error("expected error for unknown stage")
	}
}

func TestRunStats(t *testing.T) {
	events := sampleEvents()
	unchanged := events[1]
	unchanged.Timestamp = base.Add(2 * time.Second)
	unchanged.RunID = "cccccccc-1111-2222-3333-444444444444"
	unchanged.Artifact = &log.ArtifactEvent{Name: "remote_config.h", Kind: "combined", Size: 4096, Unchanged: true}
	path := writeLog(t, append(events, unchanged))

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Events: 4\n",
		"  model    1\n",
		"Runs: 3\n",
		"  aaaaaaaa ok     written=1 unchanged=0 bytes=4096 source=device.yaml\n",
		"  bbbbbbbb failed written=0 unchanged=0 bytes=0\n",
		"  cccccccc ok     written=0 unchanged=1 bytes=0",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestRunStatsEmpty(t *testing.T) {
	path := writeLog(t, nil)
	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats: %v", err)
	}
	if buf.String() != "Events: 0\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
