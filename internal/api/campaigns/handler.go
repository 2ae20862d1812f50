package campaigns

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/Vasu1712/scenecast/internal/api/respond"
	"github.com/Vasu1712/scenecast/internal/catalog"
	"github.com/Vasu1712/scenecast/internal/logger"
	"github.com/Vasu1712/scenecast/internal/models"
)

type CampaignHandler struct {
	Store *catalog.Store
	Log   *logger.Logger
}

// ListCampaigns handles GET /api/campaigns.
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string][]models.Campaign{"campaigns": h.Store.Current().Campaigns()})
}

// CreateCampaign handles POST /api/campaigns. The name comes from a JSON body
// or a urlencoded form.
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		req.Name = r.FormValue("name")
	}

	campaign, err := h.Store.CreateCampaign(r.Context(), req.Name)
	switch {
	case errors.Is(err, catalog.ErrNameRequired):
		respond.Error(w, http.StatusBadRequest, "campaign name is required")
		return
	case errors.Is(err, catalog.ErrDuplicateCampaign):
		respond.Error(w, http.StatusBadRequest, "a campaign with this name already exists")
		return
	case err != nil:
		h.Log.Error("create campaign", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]models.Campaign{"campaign": campaign})
}
