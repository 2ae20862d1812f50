package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Vasu1712/scenecast/internal/logger"
	"github.com/Vasu1712/scenecast/internal/models"
)

var (
	ErrNotFound          = errors.New("asset not found")
	ErrNotDeletable      = errors.New("asset cannot be deleted")
	ErrInvalidCampaign   = errors.New("unknown campaign")
	ErrNameRequired      = errors.New("name is required")
	ErrDuplicateCampaign = errors.New("a campaign with this name already exists")
)

// AssetKind names one of the deletable asset collections.
type AssetKind string

const (
	KindCharacter  AssetKind = "characters"
	KindBackground AssetKind = "backgrounds"
	KindTrack      AssetKind = "tracks"
)

// Persister loads and saves the library document. Load returns (nil, nil)
// when nothing has been stored yet.
type Persister interface {
	Load(ctx context.Context) (*models.Library, error)
	Save(ctx context.Context, lib *models.Library) error
}

// Store owns the library. Reads go through Current, which never blocks; writes
// are serialized, persisted, then published as a fresh Snapshot.
type Store struct {
	mu        sync.Mutex
	current   atomic.Pointer[Snapshot]
	persister Persister
	layouts   []models.Layout
	log       *logger.Logger
	now       func() time.Time

	listenersMu sync.RWMutex
	listeners   []func(*Snapshot)
}

// Open loads the library from p, repairs it and persists the repaired copy if needed.
func Open(ctx context.Context, p Persister, layouts []models.Layout, log *logger.Logger) (*Store, error) {
	s := &Store{
		persister: p,
		layouts:   layouts,
		log:       log.With("component", "catalog"),
		now:       time.Now,
	}

	stored, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	lib, changed := normalizeLibrary(stored, s.now())
	if changed {
		if err := p.Save(ctx, lib); err != nil {
			return nil, fmt.Errorf("save normalized library: %w", err)
		}
		s.log.Info("library normalized and saved",
			"campaigns", len(lib.Campaigns), "backgrounds", len(lib.Backgrounds),
			"characters", len(lib.Characters), "tracks", len(lib.Tracks))
	}
	s.current.Store(NewSnapshot(lib, layouts))
	return s, nil
}

// Current returns the latest snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// OnChange registers fn to be called with every new snapshot after a mutation.
func (s *Store) OnChange(fn func(*Snapshot)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// update applies mutate to a copy of the library and commits the result.
func (s *Store) update(ctx context.Context, mutate func(lib *models.Library) error) (*Snapshot, error) {
	s.mu.Lock()
	lib := s.current.Load().Library()
	if err := mutate(lib); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	lib, _ = normalizeLibrary(lib, s.now())
	if err := s.persister.Save(ctx, lib); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("save library: %w", err)
	}
	next := NewSnapshot(lib, s.layouts)
	s.current.Store(next)
	s.mu.Unlock()

	s.listenersMu.RLock()
	listeners := append([]func(*Snapshot){}, s.listeners...)
	s.listenersMu.RUnlock()
	for _, fn := range listeners {
		fn(next)
	}
	return next, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// CreateCampaign adds a campaign. Names are trimmed, inner whitespace collapsed,
// and must be unique regardless of case.
func (s *Store) CreateCampaign(ctx context.Context, name string) (models.Campaign, error) {
	name = strings.TrimSpace(whitespace.ReplaceAllString(name, " "))
	if name == "" {
		return models.Campaign{}, ErrNameRequired
	}

	var created models.Campaign
	_, err := s.update(ctx, func(lib *models.Library) error {
		for _, c := range lib.Campaigns {
			if strings.EqualFold(c.Name, name) {
				return fmt.Errorf("%q: %w", name, ErrDuplicateCampaign)
			}
		}
		created = newCampaign(name, s.now())
		lib.Campaigns = append(lib.Campaigns, created)
		return nil
	})
	if err != nil {
		return models.Campaign{}, err
	}
	s.log.Info("campaign created", "id", created.ID, "name", created.Name)
	return created, nil
}

func requireCampaign(lib *models.Library, id string) error {
	for _, c := range lib.Campaigns {
		if id != "" && c.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%q: %w", id, ErrInvalidCampaign)
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(models.TimestampLayout)
}

// AddCharacter stores an uploaded character. ID, origin and creation time are assigned here.
func (s *Store) AddCharacter(ctx context.Context, c models.Character) (models.Character, error) {
	_, err := s.update(ctx, func(lib *models.Library) error {
		if err := requireCampaign(lib, c.CampaignID); err != nil {
			return err
		}
		c.ID = NewAssetID("char", c.Name)
		c.Origin = models.OriginUpload
		c.CreatedAt = s.stamp()
		lib.Characters = append(lib.Characters, c)
		return nil
	})
	if err != nil {
		return models.Character{}, err
	}
	s.log.Info("character added", "id", c.ID, "campaign", c.CampaignID)
	return c, nil
}

// AddBackground stores an uploaded background.
func (s *Store) AddBackground(ctx context.Context, b models.Background) (models.Background, error) {
	_, err := s.update(ctx, func(lib *models.Library) error {
		if err := requireCampaign(lib, b.CampaignID); err != nil {
			return err
		}
		b.ID = NewAssetID("bg", b.Name)
		b.Origin = models.OriginUpload
		b.CreatedAt = s.stamp()
		lib.Backgrounds = append(lib.Backgrounds, b)
		return nil
	})
	if err != nil {
		return models.Background{}, err
	}
	s.log.Info("background added", "id", b.ID, "campaign", b.CampaignID)
	return b, nil
}

// AddTrack stores an uploaded audio or video track.
func (s *Store) AddTrack(ctx context.Context, t models.Track) (models.Track, error) {
	_, err := s.update(ctx, func(lib *models.Library) error {
		if err := requireCampaign(lib, t.CampaignID); err != nil {
			return err
		}
		t.ID = NewAssetID("track", t.Name)
		t.Origin = models.OriginUpload
		t.CreatedAt = s.stamp()
		t.Storage = ClassifyTrack(t)
		lib.Tracks = append(lib.Tracks, t)
		return nil
	})
	if err != nil {
		return models.Track{}, err
	}
	s.log.Info("track added", "id", t.ID, "kind", t.Storage, "campaign", t.CampaignID)
	return t, nil
}

// DeleteAsset removes an uploaded asset and returns the public paths of the
// files it referenced so the caller can remove them.
func (s *Store) DeleteAsset(ctx context.Context, kind AssetKind, id string) ([]string, error) {
	var files []string
	_, err := s.update(ctx, func(lib *models.Library) error {
		var origin string
		var found bool
		switch kind {
		case KindCharacter:
			lib.Characters, origin, files, found = removeByID(lib.Characters, id, func(c models.Character) (string, string, []string) {
				return c.ID, c.Origin, []string{c.Image}
			})
		case KindBackground:
			lib.Backgrounds, origin, files, found = removeByID(lib.Backgrounds, id, func(b models.Background) (string, string, []string) {
				return b.ID, b.Origin, []string{b.Image}
			})
		case KindTrack:
			lib.Tracks, origin, files, found = removeByID(lib.Tracks, id, func(t models.Track) (string, string, []string) {
				return t.ID, t.Origin, []string{t.File, t.Source}
			})
		default:
			return fmt.Errorf("asset kind %q: %w", kind, ErrNotFound)
		}
		if !found {
			return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
		}
		if origin != models.OriginUpload {
			return fmt.Errorf("%s %q: %w", kind, id, ErrNotDeletable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("asset deleted", "kind", kind, "id", id)

	paths := files[:0]
	for _, f := range files {
		if f != "" {
			paths = append(paths, f)
		}
	}
	return paths, nil
}

func removeByID[T any](items []T, id string, describe func(T) (string, string, []string)) ([]T, string, []string, bool) {
	for i, item := range items {
		itemID, origin, files := describe(item)
		if itemID != id {
			continue
		}
		out := append(append([]T{}, items[:i]...), items[i+1:]...)
		return out, origin, files, true
	}
	return items, "", nil, false
}
