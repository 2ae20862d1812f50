package catalog

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlug     = regexp.MustCompile(`[^a-z0-9]+`)
	mojibakeRun = regexp.MustCompile(`(?:Ã.|Â|â.|\x{FFFD})`)
)

// Slugify lower-cases s, strips accents and collapses everything else into dashes.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	slug := strings.Trim(nonSlug.ReplaceAllString(folded, "-"), "-")
	if slug == "" {
		return "element"
	}
	return slug
}

func randomSuffix() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

func base36(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 36)
}

// NewCampaignID builds campaign-<slug>-<base36 millis>-<random>.
func NewCampaignID(name string, now time.Time) string {
	if strings.TrimSpace(name) == "" {
		name = "campaign"
	}
	return "campaign-" + Slugify(name) + "-" + base36(now) + "-" + randomSuffix()
}

// NewAssetID builds <prefix>-<slug>-<random>.
func NewAssetID(prefix, name string) string {
	return prefix + "-" + Slugify(name) + "-" + randomSuffix()
}

// NewFileName derives a collision-free file name that keeps the original extension.
func NewFileName(original string, now time.Time) string {
	original = DecodeUploadText(original)
	ext := filepath.Ext(original)
	if ext == "" {
		ext = ".png"
	}
	base := Slugify(strings.TrimSuffix(filepath.Base(original), ext))
	return base + "-" + base36(now) + "-" + randomSuffix() + strings.ToLower(ext)
}

// DecodeUploadText repairs UTF-8 names that were decoded as latin1 by the client.
// The input is returned unchanged when it does not look garbled or when the repair
// would not help.
func DecodeUploadText(s string) string {
	if s == "" || !mojibakeRun.MatchString(s) {
		return s
	}
	raw, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil || raw == "" {
		return s
	}
	if !utf8.ValidString(raw) || mojibakeRun.MatchString(raw) {
		return s
	}
	return raw
}
