package handler

import (
	"net/http"

	"github.com/proofdesk/portal/internal/ctxkeys"
	"github.com/proofdesk/portal/internal/model"
	"github.com/proofdesk/portal/internal/service"
)

type DashboardHandler struct {
	reconciler *service.ReconcilerService
}

func NewDashboardHandler(reconciler *service.ReconcilerService) *DashboardHandler {
	return &DashboardHandler{reconciler: reconciler}
}

type dashboardResponse struct {
	Orders         []*model.Order     `json:"orders"`
	Quotes         []*model.Quote     `json:"quotes"`
	Artwork        []ArtworkResponse  `json:"artwork"`
	DeletedArtwork []ArtworkResponse  `json:"deleted_artwork"`
	SavedItems     []*model.SavedItem `json:"saved_items"`
	Documents      []*model.Document  `json:"documents"`
	Counts         map[string]int     `json:"counts"`
}

// Dashboard returns the reconciled per-customer view. Collections that
// failed to load come back empty rather than failing the whole response.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	snapshot := h.reconciler.Snapshot(r.Context(), identity)

	respondJSON(w, http.StatusOK, dashboardResponse{
		Orders:         snapshot.Orders,
		Quotes:         snapshot.Quotes,
		Artwork:        NewArtworkResponses(snapshot.Artwork),
		DeletedArtwork: NewArtworkResponses(snapshot.DeletedArtwork),
		SavedItems:     snapshot.SavedItems,
		Documents:      snapshot.Documents,
		Counts:         snapshot.Counts(),
	})
}
