package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes generation events to an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter logs events at Debug level; errors are always logged at
// Error level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter that logs non-error events at level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("stage", event.Stage.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}

	level := a.level
	msg := "rci generation"

	switch {
	case event.Plan != nil:
		msg = "rci plan"
		attrs = append(attrs,
			slog.Any("active_types", event.Plan.ActiveTypes),
			slog.Int("records", event.Plan.Records),
			slog.Bool("union", event.Plan.Union),
			slog.Int("groups", event.Plan.Groups),
			slog.Int("rci_errors", event.Plan.RCIErrors),
			slog.Int("global_errors", event.Plan.GlobalErrors),
			slog.Int("pool_size", event.Plan.PoolSize),
		)
	case event.Artifact != nil:
		msg = "rci artifact"
		attrs = append(attrs,
			slog.String("name", event.Artifact.Name),
			slog.String("kind", event.Artifact.Kind),
			slog.Int("size", event.Artifact.Size),
		)
		if event.Artifact.Digest != "" {
			attrs = append(attrs, slog.String("digest", event.Artifact.Digest))
		}
		if event.Artifact.Path != "" {
			attrs = append(attrs, slog.String("path", event.Artifact.Path))
		}
		if event.Artifact.Unchanged {
			attrs = append(attrs, slog.Bool("unchanged", true))
		}
	case event.Error != nil:
		msg = "rci generation failed"
		level = slog.LevelError
		attrs = append(attrs,
			slog.String("error_stage", event.Error.Stage.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Kind != "" {
			attrs = append(attrs, slog.String("error_kind", event.Error.Kind))
		}
	}

	a.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
