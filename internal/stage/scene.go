package stage

import (
	"time"

	"github.com/Vasu1712/scenecast/internal/catalog"
	"github.com/Vasu1712/scenecast/internal/layout"
	"github.com/Vasu1712/scenecast/internal/models"
)

// normalizeScene validates req against the catalog and layout table. It returns
// false when the scene must be rejected: an unresolvable video, or a
// character scene without a known background.
func normalizeScene(req SceneRequest, cat *catalog.Snapshot, layouts *layout.Table, now time.Time) (models.Scene, bool) {
	campaign := ""
	if c, ok := cat.Campaign(req.Campaign); ok {
		campaign = c.ID
	}

	if req.Type == models.SceneTypeVideo {
		if req.Video == "" {
			return models.Scene{}, false
		}
		track, ok := cat.TrackOfKind(req.Video, models.TrackKindVideo)
		if !ok {
			return models.Scene{}, false
		}
		return models.Scene{
			Type:      models.SceneTypeVideo,
			Video:     track.ID,
			Campaign:  campaign,
			UpdatedAt: now,
		}, true
	}

	background, ok := cat.Background(req.Background)
	if !ok {
		return models.Scene{}, false
	}

	l, ok := layouts.Resolve(req.Layout, len(req.Left), len(req.Right))
	if !ok {
		return models.Scene{}, false
	}

	return models.Scene{
		Type:       models.SceneTypeCharacter,
		Background: background.ID,
		Layout:     l.ID,
		Left:       fitSlots(req.Left, l.Left, cat),
		Right:      fitSlots(req.Right, l.Right, cat),
		Campaign:   campaign,
		UpdatedAt:  now,
	}, true
}

// fitSlots truncates or pads requested to exactly n slots and resolves each one.
func fitSlots(requested []SlotRequest, n int, cat *catalog.Snapshot) []*models.Slot {
	out := make([]*models.Slot, n)
	for i := 0; i < n && i < len(requested); i++ {
		out[i] = resolveSlot(requested[i], cat)
	}
	return out
}

func resolveSlot(req SlotRequest, cat *catalog.Snapshot) *models.Slot {
	character, ok := cat.Character(req.ID)
	if !ok {
		return nil
	}
	orientation := req.Orientation
	if !orientation.Valid() {
		orientation = models.OrientationNormal
	}
	return &models.Slot{ID: character.ID, Orientation: orientation}
}

// defaultScene fills the default layout round-robin with the catalog's
// characters: right side from the first character, left side continuing after it.
func defaultScene(cat *catalog.Snapshot, layouts *layout.Table, now time.Time) models.Scene {
	l, _ := layouts.Fallback()
	background := ""
	if bgs := cat.Backgrounds(); len(bgs) > 0 {
		background = bgs[0].ID
	}
	characters := cat.Characters()
	return models.Scene{
		Type:       models.SceneTypeCharacter,
		Background: background,
		Layout:     l.ID,
		Left:       roundRobin(characters, l.Left, l.Right),
		Right:      roundRobin(characters, l.Right, 0),
		UpdatedAt:  now,
	}
}

func roundRobin(characters []models.Character, count, offset int) []*models.Slot {
	out := make([]*models.Slot, count)
	if len(characters) == 0 {
		return out
	}
	for i := range out {
		c := characters[(offset+i)%len(characters)]
		out[i] = &models.Slot{ID: c.ID, Orientation: models.OrientationNormal}
	}
	return out
}
