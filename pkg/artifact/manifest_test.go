package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestStore(t *testing.T) {
	t.Run("LoadNonExistent", func(t *testing.T) {
		store := NewManifestStore(filepath.Join(t.TempDir(), ManifestFileName))
		got, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		store := NewManifestStore(filepath.Join(t.TempDir(), "out", ManifestFileName))
		m := &Manifest{
			RunID:  "run-1",
			Source: "device.yaml",
			Artifacts: []Entry{
				{Name: "rci_config.h", Kind: "definitions", Size: 10, Digest: Digest("h")},
				{Name: "rci_config.c", Kind: "data", Size: 20, Digest: Digest("c")},
			},
		}
		require.NoError(t, store.Save(m))
		assert.Equal(t, ManifestVersion, m.Version)
		assert.False(t, m.SavedAt.IsZero())

		got, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "run-1", got.RunID)
		assert.Equal(t, m.Artifacts, got.Artifacts)

		e, ok := got.Entry("rci_config.c")
		require.True(t, ok)
		assert.Equal(t, "data", e.Kind)
		_, ok = got.Entry("remote_config.h")
		assert.False(t, ok)
	})

	t.Run("LoadCorrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ManifestFileName)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		_, err := NewManifestStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("Clear", func(t *testing.T) {
		store := NewManifestStore(filepath.Join(t.TempDir(), ManifestFileName))
		require.NoError(t, store.Clear(), "clearing a missing manifest is not an error")
		require.NoError(t, store.Save(&Manifest{RunID: "x"}))
		require.NoError(t, store.Clear())
		_, err := os.Stat(store.Path())
		assert.True(t, os.IsNotExist(err))
	})
}
