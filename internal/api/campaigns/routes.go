package campaigns

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterCampaignRoutes registers the campaign endpoints.
func RegisterCampaignRoutes(r *mux.Router, handler *CampaignHandler) {
	r.HandleFunc("/api/campaigns", handler.ListCampaigns).Methods(http.MethodGet)
	r.HandleFunc("/api/campaigns", handler.CreateCampaign).Methods(http.MethodPost)
}
