// Package api provides HTTP API handlers for the rcigen web service.
package api

import "time"

// Run statuses.
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// GenerateRequest is the request body for POST /api/v1/generate.
type GenerateRequest struct {
	// Source names the definition, for the run history (optional).
	Source string `json:"source,omitempty"`

	// Model is the configuration definition as YAML text.
	Model string `json:"model"`

	// Options are generation options as YAML text (optional).
	Options string `json:"options,omitempty"`
}

// Run represents a generation run in API responses.
type Run struct {
	ID           string     `json:"id"`
	Source       string     `json:"source,omitempty"`
	Status       string     `json:"status"`
	Mode         string     `json:"mode,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	ActiveTypes  []string   `json:"active_types,omitempty"`
	Groups       int        `json:"groups"`
	PoolSize     int        `json:"pool_size"`
	ErrorKind    string     `json:"error_kind,omitempty"`
	ErrorMessage string     `json:"error,omitempty"`
}

// ArtifactInfo describes one artifact of a run.
type ArtifactInfo struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Size   int    `json:"size"`
	Digest string `json:"digest"`
}

// RunListResponse is the response for GET /api/v1/runs.
type RunListResponse struct {
	Runs  []Run `json:"runs"`
	Total int   `json:"total"`
}

// RunDetailResponse is the response for GET /api/v1/runs/{id} and
// POST /api/v1/generate.
type RunDetailResponse struct {
	Run
	Artifacts []ArtifactInfo `json:"artifacts,omitempty"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	RunID string `json:"run_id,omitempty"`
}
