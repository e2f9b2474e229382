package log

import "time"

// Event is one record of a generation run.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID identifies the generation run (UUID).
	RunID string `cbor:"2,keyasint"`

	// Stage of the run that produced the event.
	Stage Stage `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Source is the definition file or request the run was started from.
	Source string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Plan     *PlanEvent      `cbor:"10,keyasint,omitempty"`
	Artifact *ArtifactEvent  `cbor:"11,keyasint,omitempty"`
	Error    *ErrorEventData `cbor:"12,keyasint,omitempty"`
}

// Stage identifies the step of a generation run.
type Stage uint8

const (
	// StagePlan derives active types, layout, numbering and the string pool.
	StagePlan Stage = 0
	// StageRender renders artifact text.
	StageRender Stage = 1
	// StageWrite hands artifact text to its sink.
	StageWrite Stage = 2
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StagePlan:
		return "PLAN"
	case StageRender:
		return "RENDER"
	case StageWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryPlan indicates a computed generation plan.
	CategoryPlan Category = 0
	// CategoryArtifact indicates a rendered or written artifact.
	CategoryArtifact Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryPlan:
		return "PLAN"
	case CategoryArtifact:
		return "ARTIFACT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// PlanEvent summarizes the derived facts of a run.
type PlanEvent struct {
	// ActiveTypes lists the canonical names of the element types in use.
	ActiveTypes []string `cbor:"1,keyasint,omitempty"`

	// Records is the number of value records in the value holder.
	Records int `cbor:"2,keyasint"`

	// Union is true when the value holder is a union.
	Union bool `cbor:"3,keyasint,omitempty"`

	// Groups is the number of groups across all categories.
	Groups int `cbor:"4,keyasint"`

	// RCIErrors and GlobalErrors count the two global error tiers.
	RCIErrors    int `cbor:"5,keyasint"`
	GlobalErrors int `cbor:"6,keyasint"`

	// PoolSize is the string pool size in bytes (0 when descriptions are off).
	PoolSize int `cbor:"7,keyasint,omitempty"`
}

// ArtifactEvent describes one output artifact.
type ArtifactEvent struct {
	// Name is the artifact file name (e.g. remote_config.h).
	Name string `cbor:"1,keyasint"`

	// Kind is the artifact role (combined, definitions, data).
	Kind string `cbor:"2,keyasint"`

	// Size is the artifact size in bytes.
	Size int `cbor:"3,keyasint"`

	// Digest is the hex BLAKE2b-256 digest of the content, when computed.
	Digest string `cbor:"4,keyasint,omitempty"`

	// Path is the destination path, for artifacts written to disk.
	Path string `cbor:"5,keyasint,omitempty"`

	// Unchanged is true when the destination already held identical content.
	Unchanged bool `cbor:"6,keyasint,omitempty"`
}

// ErrorEventData captures a failed run.
type ErrorEventData struct {
	// Stage where the error occurred.
	Stage Stage `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Kind classifies the failure (model, options, sink, io).
	Kind string `cbor:"3,keyasint,omitempty"`
}
