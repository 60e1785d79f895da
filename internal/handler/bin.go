package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/proofdesk/portal/internal/ctxkeys"
	"github.com/proofdesk/portal/internal/repository"
	"github.com/proofdesk/portal/internal/service"
)

type BinHandler struct {
	artworkService *service.ArtworkService
	reconciler     *service.ReconcilerService
}

func NewBinHandler(artworkService *service.ArtworkService, reconciler *service.ReconcilerService) *BinHandler {
	return &BinHandler{
		artworkService: artworkService,
		reconciler:     reconciler,
	}
}

// List returns the customer's soft-deleted artwork, most recently
// deleted first.
func (h *BinHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	snapshot := h.reconciler.Snapshot(r.Context(), identity)

	respondJSON(w, http.StatusOK, map[string]any{
		"artwork": NewArtworkResponses(snapshot.DeletedArtwork),
	})
}

func (h *BinHandler) Restore(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	id := r.PathValue("id")

	err := h.artworkService.Restore(identity, id)
	if errors.Is(err, repository.ErrArtworkNotFound) {
		respondError(w, http.StatusNotFound, "artwork not found")
		return
	}
	if errors.Is(err, repository.ErrNotInBin) {
		respondError(w, http.StatusConflict, "artwork is not in the bin")
		return
	}
	if err != nil {
		slog.Error("failed to restore artwork", "error", err, "artwork_id", id)
		respondError(w, http.StatusInternalServerError, "failed to restore artwork")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "restored", "id": id})
}

// PermanentlyDelete destroys a binned artwork. Active artwork is refused:
// there is no hard delete that skips the bin.
func (h *BinHandler) PermanentlyDelete(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	id := r.PathValue("id")

	err := h.artworkService.PermanentlyDelete(identity, id)
	if errors.Is(err, repository.ErrArtworkNotFound) {
		respondError(w, http.StatusNotFound, "artwork not found")
		return
	}
	if errors.Is(err, repository.ErrNotInBin) {
		respondError(w, http.StatusConflict, "artwork is not in the bin")
		return
	}
	if err != nil {
		slog.Error("failed to permanently delete artwork", "error", err, "artwork_id", id)
		respondError(w, http.StatusInternalServerError, "failed to delete artwork")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
