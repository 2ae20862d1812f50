package scenes

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSceneRoutes registers the bootstrap reads and the websocket endpoint.
func RegisterSceneRoutes(r *mux.Router, handler *SceneHandler) {
	r.HandleFunc("/api/scene", handler.GetScene).Methods(http.MethodGet)
	r.HandleFunc("/api/audio", handler.GetAudio).Methods(http.MethodGet)
	r.HandleFunc("/api/library", handler.GetLibrary).Methods(http.MethodGet)
	r.HandleFunc("/ws", handler.ServeWS).Methods(http.MethodGet)
}
