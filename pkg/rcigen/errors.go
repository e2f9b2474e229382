package rcigen

import "errors"

var (
	// ErrOptionConflict is returned when the options cannot be honoured.
	// It is reported before anything is written.
	ErrOptionConflict = errors.New("option conflict")

	// ErrSink wraps failures of an artifact sink. Whatever was written to
	// the sink before the failure must be discarded by the caller.
	ErrSink = errors.New("artifact sink")
)
