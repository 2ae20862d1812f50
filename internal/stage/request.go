package stage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Vasu1712/scenecast/internal/models"
)

// ErrNotObject is returned when a scene request is not a JSON object.
var ErrNotObject = errors.New("request must be a JSON object")

// SlotRequest is one submitted slot after shape parsing. A bare id and an
// {id, orientation} object both end up here; anything else is an empty slot.
type SlotRequest struct {
	ID          string
	Orientation models.Orientation
}

// SceneRequest is a submitted scene with its fields reduced to plain values.
// Nothing here has been checked against the catalog yet.
type SceneRequest struct {
	Type       models.SceneType
	Background string
	Layout     string
	Left       []SlotRequest
	Right      []SlotRequest
	Video      string
	Campaign   string
}

// MixEntryRequest is one submitted mix entry. Volume and Position are nil when
// the client sent no usable number.
type MixEntryRequest struct {
	ID       string
	Volume   *float64
	Loop     bool
	Playing  bool
	Position *float64
}

// MixRequest is a submitted audio mix.
type MixRequest struct {
	Tracks []MixEntryRequest
}

func decodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func decodeArray(raw json.RawMessage) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}
	return arr
}

// scalarString accepts strings and numbers, the two shapes a client can use for an id.
func scalarString(raw json.RawMessage) string {
	switch v := decodeValue(raw).(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	}
	return ""
}

func truthy(raw json.RawMessage) bool {
	switch v := decodeValue(raw).(type) {
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0 && !math.IsNaN(f)
	case nil:
		return false
	}
	return true
}

func isFalse(raw json.RawMessage) bool {
	b, ok := decodeValue(raw).(bool)
	return ok && !b
}

// finiteNumber reads numbers, numeric strings and booleans.
func finiteNumber(raw json.RawMessage) *float64 {
	var f float64
	switch v := decodeValue(raw).(type) {
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case bool:
		if v {
			f = 1
		}
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseSlot(raw json.RawMessage) SlotRequest {
	if obj, ok := decodeObject(raw); ok {
		orientation, _ := decodeValue(obj["orientation"]).(string)
		return SlotRequest{ID: scalarString(obj["id"]), Orientation: models.Orientation(orientation)}
	}
	if id, ok := decodeValue(raw).(string); ok {
		return SlotRequest{ID: id}
	}
	return SlotRequest{}
}

func parseSlots(raw json.RawMessage) []SlotRequest {
	items := decodeArray(raw)
	slots := make([]SlotRequest, 0, len(items))
	for _, item := range items {
		slots = append(slots, parseSlot(item))
	}
	return slots
}

// ParseSceneRequest reduces an untrusted scene payload to a SceneRequest.
func ParseSceneRequest(raw json.RawMessage) (SceneRequest, error) {
	obj, ok := decodeObject(raw)
	if !ok {
		return SceneRequest{}, ErrNotObject
	}

	sceneType, _ := decodeValue(obj["type"]).(string)
	campaign := scalarString(obj["campaign"])
	if campaign == "" {
		campaign = scalarString(obj["campaignId"])
	}

	return SceneRequest{
		Type:       models.SceneType(sceneType),
		Background: scalarString(obj["background"]),
		Layout:     scalarString(obj["layout"]),
		Left:       parseSlots(obj["left"]),
		Right:      parseSlots(obj["right"]),
		Video:      scalarString(obj["video"]),
		Campaign:   strings.TrimSpace(campaign),
	}, nil
}

// ParseMixRequest reduces an untrusted mix payload. Anything that is not an
// object with a tracks array yields an empty request; entries that are not
// objects are dropped.
func ParseMixRequest(raw json.RawMessage) MixRequest {
	req := MixRequest{Tracks: []MixEntryRequest{}}
	obj, ok := decodeObject(raw)
	if !ok {
		return req
	}
	for _, item := range decodeArray(obj["tracks"]) {
		entry, ok := decodeObject(item)
		if !ok {
			continue
		}
		req.Tracks = append(req.Tracks, MixEntryRequest{
			ID:       scalarString(entry["id"]),
			Volume:   finiteNumber(entry["volume"]),
			Loop:     truthy(entry["loop"]),
			Playing:  !isFalse(entry["playing"]),
			Position: finiteNumber(entry["position"]),
		})
	}
	return req
}
