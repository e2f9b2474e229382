package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rci-tools/rcigen/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByStage    map[log.Stage]int
	EventsByCategory map[log.Category]int
	ErrorsByKind     map[string]int
	Runs             map[string]*RunSummary
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// RunSummary holds statistics for a single generation run.
type RunSummary struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Source    string
	Events    int
	Written   int
	Unchanged int
	Bytes     int
	Failed    bool
}

// CollectStats reads every event of the reader.
func CollectStats(reader *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByStage:    make(map[log.Stage]int),
		EventsByCategory: make(map[log.Category]int),
		ErrorsByKind:     make(map[string]int),
		Runs:             make(map[string]*RunSummary),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByStage[event.Stage]++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		run, ok := stats.Runs[event.RunID]
		if !ok {
			run = &RunSummary{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Runs[event.RunID] = run
		}
		run.Events++
		if event.Timestamp.After(run.LastSeen) {
			run.LastSeen = event.Timestamp
		}
		if run.Source == "" {
			run.Source = event.Source
		}

		switch {
		case event.Artifact != nil && event.Stage == log.StageWrite:
			if event.Artifact.Unchanged {
				run.Unchanged++
			} else {
				run.Written++
				run.Bytes += event.Artifact.Size
			}
		case event.Error != nil:
			run.Failed = true
			kind := event.Error.Kind
			if kind == "" {
				kind = "other"
			}
			stats.ErrorsByKind[kind]++
		}
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := CollectStats(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintf(w, "Events: %d\n", stats.TotalEvents)
	if stats.TotalEvents == 0 {
		return
	}

	fmt.Fprintf(w, "Time range: %s - %s\n",
		stats.TimeRange.Start.UTC().Format(timeFormat),
		stats.TimeRange.End.UTC().Format(timeFormat))

	fmt.Fprintln(w, "\nBy stage:")
	for _, s := range []log.Stage{log.StagePlan, log.StageRender, log.StageWrite} {
		if n := stats.EventsByStage[s]; n > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", s, n)
		}
	}

	fmt.Fprintln(w, "\nBy category:")
	for _, c := range []log.Category{log.CategoryPlan, log.CategoryArtifact, log.CategoryError} {
		if n := stats.EventsByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", c, n)
		}
	}

	if len(stats.ErrorsByKind) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		kinds := make([]string, 0, len(stats.ErrorsByKind))
		for k := range stats.ErrorsByKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(w, "  %-8s %d\n", k, stats.ErrorsByKind[k])
		}
	}

	ids := make([]string, 0, len(stats.Runs))
	for id := range stats.Runs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return stats.Runs[ids[i]].FirstSeen.Before(stats.Runs[ids[j]].FirstSeen)
	})

	fmt.Fprintf(w, "\nRuns: %d\n", len(ids))
	for _, id := range ids {
		r := stats.Runs[id]
		status := "ok"
		if r.Failed {
			status = "failed"
		}
		fmt.Fprintf(w, "  %s %-6s written=%d unchanged=%d bytes=%d", shortenRunID(id), status, r.Written, r.Unchanged, r.Bytes)
		if r.Source != "" {
			fmt.Fprintf(w, " source=%s", r.Source)
		}
		fmt.Fprintln(w)
	}
}
