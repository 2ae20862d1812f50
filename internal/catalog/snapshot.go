package catalog

import "github.com/Vasu1712/scenecast/internal/models"

// Snapshot is an immutable, indexed view of the library. A new Snapshot is built
// on every change and swapped in whole, so readers always see one consistent catalog.
type Snapshot struct {
	library     *models.Library
	layouts     []models.Layout
	campaigns   map[string]models.Campaign
	backgrounds map[string]models.Background
	characters  map[string]models.Character
	tracks      map[string]models.Track
	audio       []models.Track
	video       []models.Track
}

// NewSnapshot indexes lib. The layouts are only carried along for the client view.
func NewSnapshot(lib *models.Library, layouts []models.Layout) *Snapshot {
	lib = lib.Clone()
	s := &Snapshot{
		library:     lib,
		layouts:     append([]models.Layout{}, layouts...),
		campaigns:   make(map[string]models.Campaign, len(lib.Campaigns)),
		backgrounds: make(map[string]models.Background, len(lib.Backgrounds)),
		characters:  make(map[string]models.Character, len(lib.Characters)),
		tracks:      make(map[string]models.Track, len(lib.Tracks)),
	}
	for _, c := range lib.Campaigns {
		s.campaigns[c.ID] = c
	}
	for _, b := range lib.Backgrounds {
		s.backgrounds[b.ID] = b
	}
	for _, c := range lib.Characters {
		s.characters[c.ID] = c
	}
	for _, t := range lib.Tracks {
		s.tracks[t.ID] = t
	}
	s.audio, s.video = SplitTracks(lib.Tracks)
	return s
}

func (s *Snapshot) Campaign(id string) (models.Campaign, bool) {
	c, ok := s.campaigns[id]
	return c, ok && id != ""
}

func (s *Snapshot) Background(id string) (models.Background, bool) {
	b, ok := s.backgrounds[id]
	return b, ok && id != ""
}

func (s *Snapshot) Character(id string) (models.Character, bool) {
	c, ok := s.characters[id]
	return c, ok && id != ""
}

func (s *Snapshot) Track(id string) (models.Track, bool) {
	t, ok := s.tracks[id]
	return t, ok && id != ""
}

// TrackOfKind resolves id and requires the track to classify as kind.
func (s *Snapshot) TrackOfKind(id string, kind models.TrackKind) (models.Track, bool) {
	t, ok := s.Track(id)
	if !ok || ClassifyTrack(t) != kind {
		return models.Track{}, false
	}
	return t, true
}

// Characters returns the characters in library order.
func (s *Snapshot) Characters() []models.Character {
	return append([]models.Character{}, s.library.Characters...)
}

// Backgrounds returns the backgrounds in library order.
func (s *Snapshot) Backgrounds() []models.Background {
	return append([]models.Background{}, s.library.Backgrounds...)
}

func (s *Snapshot) Campaigns() []models.Campaign {
	return append([]models.Campaign{}, s.library.Campaigns...)
}

// Library returns a copy of the persisted library.
func (s *Snapshot) Library() *models.Library {
	return s.library.Clone()
}

// View is the catalog as broadcast to clients.
func (s *Snapshot) View() models.LibraryView {
	lib := s.library.Clone()
	return models.LibraryView{
		Backgrounds: lib.Backgrounds,
		Characters:  lib.Characters,
		Tracks:      lib.Tracks,
		AudioTracks: append([]models.Track{}, s.audio...),
		VideoTracks: append([]models.Track{}, s.video...),
		Layouts:     append([]models.Layout{}, s.layouts...),
		Campaigns:   lib.Campaigns,
	}
}
