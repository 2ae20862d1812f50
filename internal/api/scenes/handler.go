package scenes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Vasu1712/scenecast/internal/api/respond"
	"github.com/Vasu1712/scenecast/internal/logger"
	"github.com/Vasu1712/scenecast/internal/models"
	"github.com/Vasu1712/scenecast/internal/stage"
	"github.com/Vasu1712/scenecast/internal/ws"
)

// SceneHandler serves the live channel and the bootstrap reads clients use
// before connecting.
type SceneHandler struct {
	Stage    *stage.Stage
	Catalog  stage.CatalogSource
	Hub      *ws.Hub
	Upgrader websocket.Upgrader
	Log      *logger.Logger
}

// GetScene handles GET /api/scene.
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]models.Scene{"scene": h.Stage.Scene()})
}

// GetAudio handles GET /api/audio.
func (h *SceneHandler) GetAudio(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]models.AudioMix{"mix": h.Stage.Mix()})
}

// GetLibrary handles GET /api/library.
func (h *SceneHandler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Catalog.Current().View())
}

// ServeWS upgrades the connection, queues the current scene and mix for the
// new client and attaches it to the hub. Both happen inside Stage.Snapshot so
// no update can slip in between the catch-up and the first broadcast.
func (h *SceneHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := ws.NewClient(h.Hub, conn)
	attached := false
	h.Stage.Snapshot(func(scene models.Scene, mix models.AudioMix) {
		if err := client.Enqueue(stage.EventSceneUpdate, scene); err != nil {
			h.Log.Error("queue initial scene", "client", client.ID, "error", err)
		}
		if err := client.Enqueue(stage.EventAudioUpdate, mix); err != nil {
			h.Log.Error("queue initial mix", "client", client.ID, "error", err)
		}
		attached = h.Hub.Attach(client)
	})
	if !attached {
		conn.Close()
		return
	}
	h.Log.Info("client connected", "client", client.ID, "remote", r.RemoteAddr)

	go client.WritePump()
	go client.ReadPump(h)
}

// HandleEvent routes inbound client events to the stage. Malformed and
// rejected requests are dropped without a reply.
func (h *SceneHandler) HandleEvent(c *ws.Client, event string, data json.RawMessage) {
	switch event {
	case stage.EventSceneDisplay:
		req, err := stage.ParseSceneRequest(data)
		if err != nil {
			h.Log.Debug("dropping scene request", "client", c.ID, "error", err)
			return
		}
		h.Stage.SubmitScene(req)
	case stage.EventAudioSet:
		h.Stage.SubmitMix(stage.ParseMixRequest(data))
	default:
		h.Log.Debug("ignoring unknown event", "client", c.ID, "event", event)
	}
}
