package catalog

import (
	"strings"
	"time"

	"github.com/Vasu1712/scenecast/internal/models"
)

const (
	defaultCampaignName  = "Main campaign"
	untitledCampaignName = "Untitled campaign"
)

func newCampaign(name string, now time.Time) models.Campaign {
	name = strings.TrimSpace(name)
	if name == "" {
		name = untitledCampaignName
	}
	return models.Campaign{
		ID:        NewCampaignID(name, now),
		Name:      name,
		CreatedAt: now.UTC().Format(models.TimestampLayout),
	}
}

func normalizeCampaign(c models.Campaign, now time.Time) models.Campaign {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = untitledCampaignName
	}
	id := strings.TrimSpace(c.ID)
	if id == "" {
		id = NewCampaignID(name, now)
	}
	createdAt := now
	if parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(c.CreatedAt)); err == nil {
		createdAt = parsed
	}
	return models.Campaign{ID: id, Name: name, CreatedAt: createdAt.UTC().Format(models.TimestampLayout)}
}

// normalizeLibrary repairs a stored library: campaigns are deduplicated and
// completed, at least one campaign exists, assets pointing at unknown campaigns
// are detached and tracks get their storage kind filled in. The second return
// value reports whether anything changed and should be written back.
func normalizeLibrary(in *models.Library, now time.Time) (*models.Library, bool) {
	if in == nil {
		return &models.Library{
			Campaigns:   []models.Campaign{newCampaign(defaultCampaignName, now)},
			Backgrounds: []models.Background{},
			Characters:  []models.Character{},
			Tracks:      []models.Track{},
		}, true
	}

	changed := false
	out := &models.Library{
		Campaigns:   make([]models.Campaign, 0, len(in.Campaigns)),
		Backgrounds: make([]models.Background, 0, len(in.Backgrounds)),
		Characters:  make([]models.Character, 0, len(in.Characters)),
		Tracks:      make([]models.Track, 0, len(in.Tracks)),
	}

	seen := make(map[string]bool, len(in.Campaigns))
	for _, c := range in.Campaigns {
		n := normalizeCampaign(c, now)
		if seen[n.ID] {
			changed = true
			continue
		}
		if n != c {
			changed = true
		}
		seen[n.ID] = true
		out.Campaigns = append(out.Campaigns, n)
	}
	if len(out.Campaigns) == 0 {
		out.Campaigns = append(out.Campaigns, newCampaign(defaultCampaignName, now))
		seen[out.Campaigns[0].ID] = true
		changed = true
	}

	attach := func(id string) string {
		trimmed := strings.TrimSpace(id)
		if !seen[trimmed] {
			trimmed = ""
		}
		if trimmed != id {
			changed = true
		}
		return trimmed
	}

	for _, b := range in.Backgrounds {
		if b.ID == "" {
			changed = true
			continue
		}
		b.CampaignID = attach(b.CampaignID)
		out.Backgrounds = append(out.Backgrounds, b)
	}
	for _, c := range in.Characters {
		if c.ID == "" {
			changed = true
			continue
		}
		c.CampaignID = attach(c.CampaignID)
		out.Characters = append(out.Characters, c)
	}
	for _, t := range in.Tracks {
		if t.ID == "" {
			changed = true
			continue
		}
		if name := DecodeUploadText(t.Name); name != t.Name {
			t.Name = name
			changed = true
		}
		if kind := ClassifyTrack(t); kind != t.Storage {
			t.Storage = kind
			changed = true
		}
		t.CampaignID = attach(t.CampaignID)
		out.Tracks = append(out.Tracks, t)
	}
	return out, changed
}
