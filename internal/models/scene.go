package models

import (
	"encoding/json"
	"time"
)

// SceneType distinguishes the two kinds of scene a viewer can display.
type SceneType string

const (
	SceneTypeCharacter SceneType = "character"
	SceneTypeVideo     SceneType = "video"
)

// Valid reports whether t is one of the known scene kinds.
func (t SceneType) Valid() bool {
	return t == SceneTypeCharacter || t == SceneTypeVideo
}

// Orientation is the display direction of a character portrait.
type Orientation string

const (
	OrientationNormal   Orientation = "normal"
	OrientationMirrored Orientation = "mirrored"
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool {
	return o == OrientationNormal || o == OrientationMirrored
}

// Slot is one occupied position in a layout. Empty positions are nil *Slot values.
type Slot struct {
	ID          string      `json:"id"`
	Orientation Orientation `json:"orientation"`
}

// Scene is the authoritative description of what viewers currently display.
// Character scenes use Background, Layout, Left and Right; video scenes use Video.
type Scene struct {
	Type       SceneType
	Background string
	Layout     string
	Left       []*Slot
	Right      []*Slot
	Video      string
	Campaign   string
	UpdatedAt  time.Time
}

// TimestampLayout is the wire format of updatedAt (ISO 8601, millisecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func slots(in []*Slot) []*Slot {
	if in == nil {
		return []*Slot{}
	}
	return in
}

// MarshalJSON emits the variant-specific shape for the scene type.
func (s Scene) MarshalJSON() ([]byte, error) {
	updatedAt := s.UpdatedAt.UTC().Format(TimestampLayout)
	if s.Type == SceneTypeVideo {
		return json.Marshal(struct {
			Type      SceneType `json:"type"`
			Video     string    `json:"video"`
			Campaign  *string   `json:"campaign"`
			UpdatedAt string    `json:"updatedAt"`
		}{s.Type, s.Video, nullable(s.Campaign), updatedAt})
	}
	return json.Marshal(struct {
		Type       SceneType `json:"type"`
		Background *string   `json:"background"`
		Layout     string    `json:"layout"`
		Left       []*Slot   `json:"left"`
		Right      []*Slot   `json:"right"`
		Campaign   *string   `json:"campaign"`
		UpdatedAt  string    `json:"updatedAt"`
	}{SceneTypeCharacter, nullable(s.Background), s.Layout, slots(s.Left), slots(s.Right), nullable(s.Campaign), updatedAt})
}

// UnmarshalJSON reads a scene previously produced by MarshalJSON.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type       SceneType `json:"type"`
		Background *string   `json:"background"`
		Layout     string    `json:"layout"`
		Left       []*Slot   `json:"left"`
		Right      []*Slot   `json:"right"`
		Video      string    `json:"video"`
		Campaign   *string   `json:"campaign"`
		UpdatedAt  time.Time `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*s = Scene{
		Type:      wire.Type,
		Layout:    wire.Layout,
		Left:      wire.Left,
		Right:     wire.Right,
		Video:     wire.Video,
		UpdatedAt: wire.UpdatedAt,
	}
	if wire.Background != nil {
		s.Background = *wire.Background
	}
	if wire.Campaign != nil {
		s.Campaign = *wire.Campaign
	}
	return nil
}
