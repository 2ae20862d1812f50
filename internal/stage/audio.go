package stage

import (
	"math"

	"github.com/Vasu1712/scenecast/internal/catalog"
	"github.com/Vasu1712/scenecast/internal/models"
)

// Mixes whose tracks differ by less than these deltas compare equal and are
// not rebroadcast.
const (
	volumeTolerance   = 0.0001
	positionTolerance = 0.01
)

// normalizeMix keeps, in order, the first occurrence of every entry that
// resolves to an audio track, with its parameters clamped.
func normalizeMix(req MixRequest, cat *catalog.Snapshot) models.AudioMix {
	mix := models.EmptyMix()
	seen := make(map[string]bool, len(req.Tracks))
	for _, entry := range req.Tracks {
		if entry.ID == "" || seen[entry.ID] {
			continue
		}
		track, ok := cat.TrackOfKind(entry.ID, models.TrackKindAudio)
		if !ok {
			continue
		}
		seen[track.ID] = true

		volume := 1.0
		if entry.Volume != nil {
			volume = math.Max(0, math.Min(1, *entry.Volume))
		}
		position := 0.0
		if entry.Position != nil && *entry.Position >= 0 {
			position = *entry.Position
		}
		mix.Tracks = append(mix.Tracks, models.MixTrack{
			ID:       track.ID,
			Volume:   volume,
			Loop:     entry.Loop,
			Playing:  entry.Playing,
			Position: position,
		})
	}
	return mix
}

// renormalizeMix re-validates an existing mix against a new catalog, dropping
// tracks that no longer resolve.
func renormalizeMix(mix models.AudioMix, cat *catalog.Snapshot) models.AudioMix {
	req := MixRequest{Tracks: make([]MixEntryRequest, 0, len(mix.Tracks))}
	for _, t := range mix.Tracks {
		volume, position := t.Volume, t.Position
		req.Tracks = append(req.Tracks, MixEntryRequest{
			ID:       t.ID,
			Volume:   &volume,
			Loop:     t.Loop,
			Playing:  t.Playing,
			Position: &position,
		})
	}
	return normalizeMix(req, cat)
}

// mixesEqual compares two mixes track by track within the tolerances above.
func mixesEqual(a, b models.AudioMix) bool {
	if len(a.Tracks) != len(b.Tracks) {
		return false
	}
	for i, x := range a.Tracks {
		y := b.Tracks[i]
		if x.ID != y.ID || x.Loop != y.Loop || x.Playing != y.Playing {
			return false
		}
		if math.Abs(x.Volume-y.Volume) >= volumeTolerance {
			return false
		}
		if math.Abs(x.Position-y.Position) >= positionTolerance {
			return false
		}
	}
	return true
}
