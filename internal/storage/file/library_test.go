package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasu1712/scenecast/internal/models"
)

func TestLoadMissing(t *testing.T) {
	s, err := NewLibraryStore(filepath.Join(t.TempDir(), "nested", "data"))
	require.NoError(t, err)

	lib, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, lib)
	assert.DirExists(t, filepath.Dir(s.Path()))
}

func TestSaveAndLoad(t *testing.T) {
	s, err := NewLibraryStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	want := &models.Library{
		Campaigns:   []models.Campaign{{ID: "c1", Name: "Main", CreatedAt: "2024-01-01T00:00:00.000Z"}},
		Backgrounds: []models.Background{{ID: "bg", Name: "Forêt", CampaignID: "c1"}},
		Characters:  []models.Character{},
		Tracks:      []models.Track{{ID: "t", Name: "Rain", File: "/uploads/tracks/audio/rain.mp3", Storage: models.TrackKindAudio, CampaignID: "c1"}},
	}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("library mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"campaigns\"")

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestLoadCorruptStartsFresh(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o644))

	s, err := NewLibraryStore(dir)
	require.NoError(t, err)
	lib, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, lib)
}
