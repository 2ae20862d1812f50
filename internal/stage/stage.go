// Package stage owns the authoritative scene and audio mix. All changes go
// through SubmitScene and SubmitMix, which validate a request against the
// current catalog, replace the state wholesale and publish the new snapshot.
package stage

import (
	"sync"
	"time"

	"github.com/Vasu1712/scenecast/internal/catalog"
	"github.com/Vasu1712/scenecast/internal/layout"
	"github.com/Vasu1712/scenecast/internal/logger"
	"github.com/Vasu1712/scenecast/internal/models"
)

// Wire event names.
const (
	EventSceneDisplay  = "scene:display"
	EventSceneUpdate   = "scene:update"
	EventAudioSet      = "audio:set"
	EventAudioUpdate   = "audio:update"
	EventLibraryUpdate = "library:update"
)

// Publisher delivers an event to every connected client. It must not block on
// slow clients.
type Publisher interface {
	Publish(event string, payload any)
}

// CatalogSource hands out the current catalog snapshot.
type CatalogSource interface {
	Current() *catalog.Snapshot
}

// Stage holds the current scene and mix. The mutex serializes submissions so
// each one runs to completion, and publishing happens under it so clients see
// updates in the order the state changed.
type Stage struct {
	mu    sync.Mutex
	scene models.Scene
	mix   models.AudioMix

	catalog CatalogSource
	layouts *layout.Table
	pub     Publisher
	now     func() time.Time
	log     *logger.Logger
}

// Option configures a Stage.
type Option func(*Stage)

// WithClock replaces time.Now for updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Stage) { s.now = now }
}

// New creates a Stage with the default scene built from the current catalog
// and an empty mix.
func New(cat CatalogSource, layouts *layout.Table, pub Publisher, log *logger.Logger, opts ...Option) *Stage {
	s := &Stage{
		mix:     models.EmptyMix(),
		catalog: cat,
		layouts: layouts,
		pub:     pub,
		now:     time.Now,
		log:     log.With("component", "stage"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scene = defaultScene(cat.Current(), layouts, s.now())
	return s
}

// Scene returns the current scene.
func (s *Stage) Scene() models.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// Mix returns the current audio mix.
func (s *Stage) Mix() models.AudioMix {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mix
}

// Snapshot calls fn with the current scene and mix while no submission can
// run. New subscribers use it to queue their initial state and register before
// the next update is published.
func (s *Stage) Snapshot(fn func(scene models.Scene, mix models.AudioMix)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.scene, s.mix)
}

// SubmitScene applies a scene change. Rejected requests leave the state alone,
// publish nothing and return false.
func (s *Stage) SubmitScene(req SceneRequest) (models.Scene, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scene, ok := normalizeScene(req, s.catalog.Current(), s.layouts, s.now().UTC())
	if !ok {
		s.log.Debug("scene rejected", "type", req.Type, "background", req.Background, "video", req.Video)
		return models.Scene{}, false
	}
	s.scene = scene
	s.pub.Publish(EventSceneUpdate, scene)
	s.log.Info("scene updated", "type", scene.Type, "layout", scene.Layout, "background", scene.Background, "video", scene.Video)
	return scene, true
}

// SubmitMix replaces the audio mix. The new mix is published only when it
// differs from the current one; the boolean reports whether it was.
func (s *Stage) SubmitMix(req MixRequest) (models.AudioMix, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mix := normalizeMix(req, s.catalog.Current())
	return mix, s.replaceMix(mix)
}

// CatalogChanged re-validates the mix against a new catalog so deleted tracks
// stop playing everywhere.
func (s *Stage) CatalogChanged(cat *catalog.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.replaceMix(renormalizeMix(s.mix, cat)) {
		s.log.Info("audio mix pruned after catalog change", "tracks", len(s.mix.Tracks))
	}
}

func (s *Stage) replaceMix(mix models.AudioMix) bool {
	changed := !mixesEqual(s.mix, mix)
	s.mix = mix
	if changed {
		s.pub.Publish(EventAudioUpdate, mix)
		s.log.Debug("audio mix updated", "tracks", len(mix.Tracks))
	}
	return changed
}
