package assets

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Vasu1712/scenecast/internal/catalog"
)

// RegisterAssetRoutes registers the upload, delete and listing endpoints.
func RegisterAssetRoutes(r *mux.Router, handler *AssetHandler) {
	r.HandleFunc("/api/assets/custom", handler.ListCustom).Methods(http.MethodGet)

	r.HandleFunc("/api/assets/characters", handler.UploadCharacter).Methods(http.MethodPost)
	r.HandleFunc("/api/assets/backgrounds", handler.UploadBackground).Methods(http.MethodPost)
	r.HandleFunc("/api/assets/tracks", handler.UploadTrack).Methods(http.MethodPost)

	r.HandleFunc("/api/assets/characters/{id}", handler.Delete(catalog.KindCharacter)).Methods(http.MethodDelete)
	r.HandleFunc("/api/assets/backgrounds/{id}", handler.Delete(catalog.KindBackground)).Methods(http.MethodDelete)
	r.HandleFunc("/api/assets/tracks/{id}", handler.Delete(catalog.KindTrack)).Methods(http.MethodDelete)
}
