package models

// MixTrack is one active audio track with its playback parameters.
// Position is the playback offset in seconds.
type MixTrack struct {
	ID       string  `json:"id"`
	Volume   float64 `json:"volume"`
	Loop     bool    `json:"loop"`
	Playing  bool    `json:"playing"`
	Position float64 `json:"position"`
}

// AudioMix is the set of concurrently active audio tracks, in activation order.
type AudioMix struct {
	Tracks []MixTrack `json:"tracks"`
}

// EmptyMix returns a mix with no tracks that still encodes as {"tracks": []}.
func EmptyMix() AudioMix {
	return AudioMix{Tracks: []MixTrack{}}
}
