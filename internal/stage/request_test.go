package stage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasu1712/scenecast/internal/models"
)

func TestParseSceneRequest(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "character",
		"background": "bg-forest",
		"layout": "2v1",
		"left": ["char-a", {"id": "char-b", "orientation": "mirrored"}],
		"right": [null, 42, {"id": 7}],
		"campaignId": " camp-1 "
	}`)

	req, err := ParseSceneRequest(raw)
	require.NoError(t, err)
	assert.Equal(t, SceneRequest{
		Type:       models.SceneTypeCharacter,
		Background: "bg-forest",
		Layout:     "2v1",
		Left: []SlotRequest{
			{ID: "char-a"},
			{ID: "char-b", Orientation: models.OrientationMirrored},
		},
		Right:    []SlotRequest{{}, {}, {ID: "7"}},
		Campaign: "camp-1",
	}, req)
}

func TestParseSceneRequestCampaignPrecedence(t *testing.T) {
	req, err := ParseSceneRequest(json.RawMessage(`{"campaign": "a", "campaignId": "b"}`))
	require.NoError(t, err)
	assert.Equal(t, "a", req.Campaign)

	req, err = ParseSceneRequest(json.RawMessage(`{"campaign": "", "campaignId": "b"}`))
	require.NoError(t, err)
	assert.Equal(t, "b", req.Campaign)
}

func TestParseSceneRequestRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{``, `null`, `"scene"`, `[1,2]`, `42`, `{broken`} {
		_, err := ParseSceneRequest(json.RawMessage(raw))
		assert.ErrorIs(t, err, ErrNotObject, "payload %q", raw)
	}
}

func TestParseSceneRequestIgnoresBadSlotArrays(t *testing.T) {
	req, err := ParseSceneRequest(json.RawMessage(`{"type":"video","video":12,"left":"char-a","right":{"id":"x"}}`))
	require.NoError(t, err)
	assert.Equal(t, models.SceneTypeVideo, req.Type)
	assert.Equal(t, "12", req.Video)
	assert.Empty(t, req.Left)
	assert.Empty(t, req.Right)
}

func TestParseMixRequest(t *testing.T) {
	raw := json.RawMessage(`{"tracks": [
		{"id": "rain", "volume": 0.5, "loop": true, "position": 12.5},
		{"id": "wind", "volume": "0.25", "loop": 0, "playing": false, "position": "-3"},
		{"id": "fire", "volume": null, "playing": 0},
		{"id": "sea", "volume": "loud", "loop": "yes"},
		"not-an-object",
		7
	]}`)

	req := ParseMixRequest(raw)
	require.Len(t, req.Tracks, 4)

	rain := req.Tracks[0]
	assert.Equal(t, "rain", rain.ID)
	require.NotNil(t, rain.Volume)
	assert.Equal(t, 0.5, *rain.Volume)
	assert.True(t, rain.Loop)
	assert.True(t, rain.Playing)
	require.NotNil(t, rain.Position)
	assert.Equal(t, 12.5, *rain.Position)

	wind := req.Tracks[1]
	require.NotNil(t, wind.Volume)
	assert.Equal(t, 0.25, *wind.Volume)
	assert.False(t, wind.Loop)
	assert.False(t, wind.Playing)
	require.NotNil(t, wind.Position)
	assert.Equal(t, -3.0, *wind.Position)

	fire := req.Tracks[2]
	assert.Nil(t, fire.Volume)
	assert.True(t, fire.Playing, "only an explicit false stops playback")
	assert.Nil(t, fire.Position)

	sea := req.Tracks[3]
	assert.Nil(t, sea.Volume)
	assert.True(t, sea.Loop)
}

func TestParseMixRequestNonObject(t *testing.T) {
	for _, raw := range []string{``, `null`, `[]`, `{"tracks": "all"}`, `{}`} {
		req := ParseMixRequest(json.RawMessage(raw))
		assert.NotNil(t, req.Tracks, "payload %q", raw)
		assert.Empty(t, req.Tracks, "payload %q", raw)
	}
}
