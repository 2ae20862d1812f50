package models

// Layout is a named pairing of left and right slot counts.
type Layout struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Left  int    `json:"left"`
	Right int    `json:"right"`
}
