// Package commands implements the rcigen-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rci-tools/rcigen/pkg/log"
)

// timeFormat is the timestamp layout of every command.
const timeFormat = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timeFormat)
	fmt.Fprintf(w, "%s [run:%s] %-6s %s\n", ts, shortenRunID(event.RunID), event.Stage, typeLabel(event))

	if event.Source != "" {
		fmt.Fprintf(w, "  Source: %s\n", event.Source)
	}

	switch {
	case event.Plan != nil:
		formatPlanDetails(w, event.Plan)
	case event.Artifact != nil:
		formatArtifactDetails(w, event.Artifact)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

func typeLabel(event log.Event) string {
	switch {
	case event.Plan != nil:
		return "Plan"
	case event.Artifact != nil:
		return "Artifact"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenRunID returns the first 8 characters of the run ID.
func shortenRunID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatPlanDetails(w io.Writer, p *log.PlanEvent) {
	if len(p.ActiveTypes) > 0 {
		fmt.Fprintf(w, "  Types: %s\n", strings.Join(p.ActiveTypes, ", "))
	}
	holder := "struct"
	if p.Union {
		holder = "union"
	}
	fmt.Fprintf(w, "  Layout: %s, %d record(s)\n", holder, p.Records)
	fmt.Fprintf(w, "  Groups: %d\n", p.Groups)
	fmt.Fprintf(w, "  Errors: %d protocol, %d global\n", p.RCIErrors, p.GlobalErrors)
	if p.PoolSize > 0 {
		fmt.Fprintf(w, "  Pool: %d bytes\n", p.PoolSize)
	}
}

func formatArtifactDetails(w io.Writer, a *log.ArtifactEvent) {
	fmt.Fprintf(w, "  Name: %s (%s)\n", a.Name, a.Kind)
	fmt.Fprintf(w, "  Size: %d bytes\n", a.Size)
	if a.Path != "" {
		fmt.Fprintf(w, "  Path: %s\n", a.Path)
	}
	if a.Digest != "" {
		fmt.Fprintf(w, "  Digest: %s\n", a.Digest)
	}
	if a.Unchanged {
		fmt.Fprintln(w, "  Unchanged")
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	if e.Kind != "" {
		fmt.Fprintf(w, "  Kind: %s\n", e.Kind)
	}
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
}

// RunView reads the log file and writes the matching events to w.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// ParseStageFlag parses a stage name: plan, render, write.
func ParseStageFlag(s string) (log.Stage, error) {
	switch strings.ToLower(s) {
	case "plan":
		return log.StagePlan, nil
	case "render":
		return log.StageRender, nil
	case "write":
		return log.StageWrite, nil
	default:
		return 0, fmt.Errorf("unknown stage: %s (valid: plan, render, write)", s)
	}
}

// ParseCategoryFlag parses a category name: plan, artifact, error.
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "plan":
		return log.CategoryPlan, nil
	case "artifact":
		return log.CategoryArtifact, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category: %s (valid: plan, artifact, error)", s)
	}
}

// ParseTimeFlag parses an RFC3339 timestamp. An empty string yields nil.
func ParseTimeFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return &t, nil
}
