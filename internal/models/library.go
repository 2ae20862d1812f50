package models

// TrackKind classifies a media track as audio or video.
type TrackKind string

const (
	TrackKindUnknown TrackKind = ""
	TrackKindAudio   TrackKind = "audio"
	TrackKindVideo   TrackKind = "video"
)

// OriginUpload marks assets created through the upload endpoints. Only those can be deleted.
const OriginUpload = "upload"

type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

type Character struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	Image      string `json:"image,omitempty"`
	Origin     string `json:"origin,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	CampaignID string `json:"campaignId"`
}

type Background struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Background string `json:"background,omitempty"` // CSS background shorthand
	Image      string `json:"image,omitempty"`
	Origin     string `json:"origin,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	CampaignID string `json:"campaignId"`
}

type Track struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	File       string    `json:"file,omitempty"`
	Source     string    `json:"source,omitempty"`
	MimeType   string    `json:"mimeType,omitempty"`
	Storage    TrackKind `json:"storage,omitempty"`
	Origin     string    `json:"origin,omitempty"`
	CreatedAt  string    `json:"createdAt,omitempty"`
	CampaignID string    `json:"campaignId"`
}

// Library is the persisted form of the catalog.
type Library struct {
	Campaigns   []Campaign   `json:"campaigns"`
	Backgrounds []Background `json:"backgrounds"`
	Characters  []Character  `json:"characters"`
	Tracks      []Track      `json:"tracks"`
}

// Clone returns a copy whose slices can be modified without touching l.
func (l *Library) Clone() *Library {
	if l == nil {
		return &Library{}
	}
	return &Library{
		Campaigns:   append([]Campaign{}, l.Campaigns...),
		Backgrounds: append([]Background{}, l.Backgrounds...),
		Characters:  append([]Character{}, l.Characters...),
		Tracks:      append([]Track{}, l.Tracks...),
	}
}

// LibraryView is the catalog snapshot sent to clients.
type LibraryView struct {
	Backgrounds []Background `json:"backgrounds"`
	Characters  []Character  `json:"characters"`
	Tracks      []Track      `json:"tracks"`
	AudioTracks []Track      `json:"audioTracks"`
	VideoTracks []Track      `json:"videoTracks"`
	Layouts     []Layout     `json:"layouts"`
	Campaigns   []Campaign   `json:"campaigns"`
}
