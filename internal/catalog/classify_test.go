package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vasu1712/scenecast/internal/models"
)

func TestClassifyTrack(t *testing.T) {
	tests := []struct {
		name  string
		track models.Track
		want  models.TrackKind
	}{
		{
			name:  "storage field wins",
			track: models.Track{Storage: "VIDEO", File: "/music/theme.mp3", MimeType: "audio/mpeg"},
			want:  models.TrackKindVideo,
		},
		{
			name:  "video upload directory",
			track: models.Track{File: "/uploads/tracks/video/intro.bin", MimeType: "audio/mpeg"},
			want:  models.TrackKindVideo,
		},
		{
			name:  "audio upload directory",
			track: models.Track{File: "/uploads/tracks/audio/rain.bin"},
			want:  models.TrackKindAudio,
		},
		{
			name:  "mime prefix",
			track: models.Track{File: "/media/clip", MimeType: "video/mp4"},
			want:  models.TrackKindVideo,
		},
		{
			name:  "file extension",
			track: models.Track{File: "/media/Tavern.OGG"},
			want:  models.TrackKindAudio,
		},
		{
			name:  "source extension when file is empty",
			track: models.Track{Source: "https://cdn.example.com/cutscene.webm"},
			want:  models.TrackKindVideo,
		},
		{
			name:  "unknown extension",
			track: models.Track{File: "/media/notes.txt"},
			want:  models.TrackKindUnknown,
		},
		{
			name:  "nothing to go on",
			track: models.Track{ID: "t1"},
			want:  models.TrackKindUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTrack(tt.track))
		})
	}
}

func TestSplitTracks(t *testing.T) {
	tracks := []models.Track{
		{ID: "a", File: "a.mp3"},
		{ID: "v", File: "v.mp4"},
		{ID: "x", File: "x.txt"},
		{ID: "b", MimeType: "audio/wav"},
	}

	audio, video := SplitTracks(tracks)
	assert.Equal(t, []string{"a", "b"}, trackIDs(audio))
	assert.Equal(t, []string{"v"}, trackIDs(video))

	audio, video = SplitTracks(nil)
	assert.NotNil(t, audio)
	assert.NotNil(t, video)
	assert.Empty(t, audio)
	assert.Empty(t, video)
}

func trackIDs(tracks []models.Track) []string {
	ids := make([]string, 0, len(tracks))
	for _, t := range tracks {
		ids = append(ids, t.ID)
	}
	return ids
}
