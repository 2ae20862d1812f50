package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2024, 3, 9, 18, 30, 5, 123456789, time.FixedZone("CET", 3600))

func TestSceneMarshalCharacter(t *testing.T) {
	scene := Scene{
		Type:       SceneTypeCharacter,
		Background: "bg-forest",
		Layout:     "1v2",
		Left:       []*Slot{{ID: "char-a", Orientation: OrientationMirrored}},
		Right:      []*Slot{nil, {ID: "char-b", Orientation: OrientationNormal}},
		Video:      "ignored",
		UpdatedAt:  stamp,
	}

	raw, err := json.Marshal(scene)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "character",
		"background": "bg-forest",
		"layout": "1v2",
		"left": [{"id": "char-a", "orientation": "mirrored"}],
		"right": [null, {"id": "char-b", "orientation": "normal"}],
		"campaign": null,
		"updatedAt": "2024-03-09T17:30:05.123Z"
	}`, string(raw))
}

func TestSceneMarshalEmptySlots(t *testing.T) {
	raw, err := json.Marshal(Scene{Layout: "2v3"})
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))
	assert.Equal(t, "character", wire["type"])
	assert.Nil(t, wire["background"])
	assert.Equal(t, []any{}, wire["left"])
	assert.Equal(t, []any{}, wire["right"])
}

func TestSceneMarshalVideo(t *testing.T) {
	raw, err := json.Marshal(Scene{Type: SceneTypeVideo, Video: "intro", Campaign: "camp-1", Background: "bg", UpdatedAt: stamp})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"video","video":"intro","campaign":"camp-1","updatedAt":"2024-03-09T17:30:05.123Z"}`, string(raw))
}

func TestSceneRoundTrip(t *testing.T) {
	in := Scene{
		Type:       SceneTypeCharacter,
		Background: "bg-cave",
		Layout:     "1v1",
		Left:       []*Slot{{ID: "a", Orientation: OrientationNormal}},
		Right:      []*Slot{nil},
		Campaign:   "camp-1",
		UpdatedAt:  time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC),
	}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out Scene
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in.Background, out.Background)
	assert.Equal(t, in.Left, out.Left)
	assert.Equal(t, in.Right, out.Right)
	assert.Equal(t, in.Campaign, out.Campaign)
	assert.True(t, in.UpdatedAt.Equal(out.UpdatedAt))
}

func TestEmptyMixEncoding(t *testing.T) {
	raw, err := json.Marshal(EmptyMix())
	require.NoError(t, err)
	assert.JSONEq(t, `{"tracks":[]}`, string(raw))
}
