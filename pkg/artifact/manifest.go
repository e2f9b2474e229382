package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ManifestVersion is the current version of the manifest file format.
const ManifestVersion = 1

// ManifestFileName is the name of the manifest inside the output directory.
const ManifestFileName = ".rcigen.json"

// Manifest records the artifacts of the last run written to a directory.
type Manifest struct {
	// Version is the manifest file format version.
	Version int `json:"version"`

	// SavedAt is when the manifest was last saved.
	SavedAt time.Time `json:"saved_at"`

	// RunID identifies the run that produced the artifacts.
	RunID string `json:"run_id"`

	// Source names the model the run was generated from.
	Source string `json:"source,omitempty"`

	// Artifacts lists the written artifacts in write order.
	Artifacts []Entry `json:"artifacts,omitempty"`
}

// Entry describes one artifact file.
type Entry struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Size   int    `json:"size"`
	Digest string `json:"digest"`
}

// Entry returns the manifest entry for the named file.
func (m *Manifest) Entry(name string) (Entry, bool) {
	for _, e := range m.Artifacts {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// ManifestStore manages persistence of a manifest to a JSON file.
type ManifestStore struct {
	mu   sync.Mutex
	path string
}

// NewManifestStore creates a new manifest store.
func NewManifestStore(path string) *ManifestStore {
	return &ManifestStore{path: path}
}

// Path returns the manifest file path.
func (s *ManifestStore) Path() string { return s.path }

// Save persists the manifest to disk.
func (s *ManifestStore) Save(m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	m.Version = ManifestVersion
	if m.SavedAt.IsZero() {
		m.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return replaceFile(s.path, data)
}

// Load reads the manifest from disk.
// Returns nil, nil if the file doesn't exist.
func (s *ManifestStore) Load() (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Clear removes the manifest file.
func (s *ManifestStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
