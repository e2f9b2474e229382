// Package log records generation events of the RCI table generator.
//
// It is separate from operational logging (slog): every generation run emits
// a plan event, one event per artifact and, on failure, an error event, all
// tagged with the run id. The event stream is a machine-readable record of
// what was generated from which definition.
//
// # Basic Usage
//
//	// Console, via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// Run record, as CBOR
//	fileLogger, err := log.NewFileLogger("rcigen.elog")
//
//	// Both
//	logger := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fileLogger)
//
// # File Format
//
// Event files are a sequence of CBOR items with integer map keys. Reader
// streams them back, optionally filtered by run, stage or category.
package log
