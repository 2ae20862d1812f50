package catalog

import (
	"path"
	"strings"

	"github.com/Vasu1712/scenecast/internal/models"
)

const (
	audioUploadPath = "/uploads/tracks/audio/"
	videoUploadPath = "/uploads/tracks/video/"
)

var audioExtensions = map[string]bool{
	"mp3": true, "wav": true, "ogg": true, "oga": true, "aac": true,
	"flac": true, "m4a": true, "opus": true, "weba": true,
}

var videoExtensions = map[string]bool{
	"mp4": true, "mpeg": true, "mpg": true, "mov": true, "qt": true, "m4v": true, "webm": true,
}

// storageKind looks only at where the track was stored: the explicit storage
// field, then the upload directory in its file path.
func storageKind(t models.Track) models.TrackKind {
	switch models.TrackKind(strings.ToLower(string(t.Storage))) {
	case models.TrackKindAudio:
		return models.TrackKindAudio
	case models.TrackKindVideo:
		return models.TrackKindVideo
	}

	file := strings.ToLower(t.File)
	switch {
	case strings.Contains(file, videoUploadPath):
		return models.TrackKindVideo
	case strings.Contains(file, audioUploadPath):
		return models.TrackKindAudio
	}
	return models.TrackKindUnknown
}

// ClassifyTrack decides whether a track is audio or video. In priority order it
// trusts the storage field, the upload path, the MIME type prefix and finally
// the file extension. Unknown is returned when nothing matches.
func ClassifyTrack(t models.Track) models.TrackKind {
	if kind := storageKind(t); kind != models.TrackKindUnknown {
		return kind
	}

	mime := strings.ToLower(t.MimeType)
	switch {
	case strings.HasPrefix(mime, "video/"):
		return models.TrackKindVideo
	case strings.HasPrefix(mime, "audio/"):
		return models.TrackKindAudio
	}

	file := t.File
	if file == "" {
		file = t.Source
	}
	ext := strings.TrimPrefix(path.Ext(strings.ToLower(file)), ".")
	switch {
	case ext == "":
		return models.TrackKindUnknown
	case videoExtensions[ext]:
		return models.TrackKindVideo
	case audioExtensions[ext]:
		return models.TrackKindAudio
	}
	return models.TrackKindUnknown
}

// SplitTracks partitions tracks by kind, dropping unclassifiable ones.
func SplitTracks(tracks []models.Track) (audio, video []models.Track) {
	audio, video = []models.Track{}, []models.Track{}
	for _, t := range tracks {
		switch ClassifyTrack(t) {
		case models.TrackKindAudio:
			audio = append(audio, t)
		case models.TrackKindVideo:
			video = append(video, t)
		}
	}
	return audio, video
}
