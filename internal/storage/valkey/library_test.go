package valkey

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasu1712/scenecast/internal/models"
)

// Runs against a live server only when SCENECAST_TEST_VALKEY_ADDR is set.
func newTestStore(t *testing.T) *LibraryStore {
	t.Helper()
	addr := os.Getenv("SCENECAST_TEST_VALKEY_ADDR")
	if addr == "" {
		t.Skip("SCENECAST_TEST_VALKEY_ADDR not set")
	}
	s, err := NewLibraryStore(context.Background(), addr, "scenecast:test:"+uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		s.client.Do(context.Background(), s.client.B().Del().Key(s.key).Build())
		s.Close()
	})
	return s
}

func TestLoadMissingKey(t *testing.T) {
	s := newTestStore(t)

	lib, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, lib)
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := &models.Library{
		Campaigns:   []models.Campaign{{ID: "c1", Name: "Main"}},
		Backgrounds: []models.Background{},
		Characters:  []models.Character{{ID: "char", Name: "Héro", CampaignID: "c1"}},
		Tracks:      []models.Track{},
	}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestConnectFailure(t *testing.T) {
	_, err := NewLibraryStore(context.Background(), "127.0.0.1:1", "k")
	assert.Error(t, err)
}
