package artifact

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rci-tools/rcigen/pkg/log"
	"github.com/rci-tools/rcigen/pkg/rcigen"
)

// Status reports what happened, or would happen, to one artifact file.
type Status struct {
	Name   string
	Path   string
	Digest string
	Size   int

	// Unchanged is true when the file already held identical content.
	Unchanged bool
}

// WriterConfig configures a Writer.
type WriterConfig struct {
	// Dir is the output directory. It is created on first write.
	Dir string

	// Source is recorded in the manifest and in events (optional).
	Source string

	// Logger receives one write event per artifact (optional).
	Logger log.Logger
}

// Writer places the artifacts of a run into a directory.
type Writer struct {
	dir      string
	source   string
	logger   log.Logger
	manifest *ManifestStore
}

// NewWriter creates a Writer for config.Dir.
func NewWriter(config WriterConfig) *Writer {
	logger := config.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Writer{
		dir:      config.Dir,
		source:   config.Source,
		logger:   logger,
		manifest: NewManifestStore(filepath.Join(config.Dir, ManifestFileName)),
	}
}

// Manifest returns the manifest store of the output directory.
func (w *Writer) Manifest() *ManifestStore { return w.manifest }

// Write writes every artifact of res whose content differs from the file on
// disk and saves the manifest. Failures wrap rcigen.ErrSink.
func (w *Writer) Write(res *rcigen.Result) ([]Status, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, w.fail(res.RunID, fmt.Errorf("%w: creating %s: %w", rcigen.ErrSink, w.dir, err))
	}

	statuses, err := w.compare(res)
	if err != nil {
		return nil, w.fail(res.RunID, err)
	}

	m := &Manifest{RunID: res.RunID, Source: w.source}
	for i, st := range statuses {
		a := res.Artifacts[i]
		if !st.Unchanged {
			if err := replaceFile(st.Path, []byte(a.Text)); err != nil {
				return statuses[:i], w.fail(res.RunID, fmt.Errorf("%w: writing %s: %w", rcigen.ErrSink, st.Path, err))
			}
		}
		w.logWrite(res.RunID, a, st)
		m.Artifacts = append(m.Artifacts, Entry{
			Name:   st.Name,
			Kind:   a.Kind.String(),
			Size:   st.Size,
			Digest: st.Digest,
		})
	}

	if err := w.manifest.Save(m); err != nil {
		return statuses, w.fail(res.RunID, fmt.Errorf("%w: saving manifest: %w", rcigen.ErrSink, err))
	}
	return statuses, nil
}

// Check compares the artifacts of res with the files on disk without writing.
// Stale lists the files that Write would change.
func (w *Writer) Check(res *rcigen.Result) (stale []Status, err error) {
	statuses, err := w.compare(res)
	if err != nil {
		return nil, err
	}
	for _, st := range statuses {
		if !st.Unchanged {
			stale = append(stale, st)
		}
	}
	return stale, nil
}

func (w *Writer) compare(res *rcigen.Result) ([]Status, error) {
	out := make([]Status, 0, len(res.Artifacts))
	for _, a := range res.Artifacts {
		st := Status{
			Name:   a.Name,
			Path:   filepath.Join(w.dir, a.Name),
			Digest: Digest(a.Text),
			Size:   len(a.Text),
		}
		current, err := os.ReadFile(st.Path)
		switch {
		case err == nil:
			st.Unchanged = bytes.Equal(current, []byte(a.Text))
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("%w: reading %s: %w", rcigen.ErrSink, st.Path, err)
		}
		out = append(out, st)
	}
	return out, nil
}

func (w *Writer) logWrite(runID string, a rcigen.Rendered, st Status) {
	w.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     runID,
		Stage:     log.StageWrite,
		Category:  log.CategoryArtifact,
		Source:    w.source,
		Artifact: &log.ArtifactEvent{
			Name:      st.Name,
			Kind:      a.Kind.String(),
			Size:      st.Size,
			Digest:    st.Digest,
			Path:      st.Path,
			Unchanged: st.Unchanged,
		},
	})
}

func (w *Writer) fail(runID string, err error) error {
	w.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     runID,
		Stage:     log.StageWrite,
		Category:  log.CategoryError,
		Source:    w.source,
		Error: &log.ErrorEventData{
			Stage:   log.StageWrite,
			Message: err.Error(),
			Kind:    rcigen.ErrorKind(err),
		},
	})
	return err
}

// replaceFile writes data to a temporary file in the destination directory
// and renames it over path.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
