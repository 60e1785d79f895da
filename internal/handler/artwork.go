package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/proofdesk/portal/internal/ctxkeys"
	"github.com/proofdesk/portal/internal/repository"
	"github.com/proofdesk/portal/internal/service"
)

type ArtworkHandler struct {
	artworkService  *service.ArtworkService
	approvalService *service.ApprovalService
	maxUploadSize   int64
}

func NewArtworkHandler(artworkService *service.ArtworkService, approvalService *service.ApprovalService, maxUploadSize int64) *ArtworkHandler {
	return &ArtworkHandler{
		artworkService:  artworkService,
		approvalService: approvalService,
		maxUploadSize:   maxUploadSize,
	}
}

// Upload accepts a multipart batch under the "files" field. Bad files are
// reported individually; the rest of the batch still lands.
func (h *ArtworkHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	// Allow headroom for multipart framing on top of the per-file cap
	err := r.ParseMultipartForm(h.maxUploadSize + (1 << 20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	orderID := r.FormValue("order_id")
	orderNumber := r.FormValue("order_number")

	result, err := h.artworkService.Upload(identity, orderID, orderNumber, headers)
	if err != nil {
		slog.Error("artwork upload failed", "error", err, "account_id", identity.AccountID)
		respondError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	status := http.StatusCreated
	if len(result.Uploaded) == 0 {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, map[string]any{
		"uploaded": NewArtworkResponses(result.Uploaded),
		"errors":   result.Errors,
	})
}

func (h *ArtworkHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	artwork, err := h.artworkService.List(identity)
	if err != nil {
		slog.Error("failed to list artwork", "error", err, "account_id", identity.AccountID)
		respondError(w, http.StatusInternalServerError, "failed to load artwork")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"artwork": NewArtworkResponses(artwork),
	})
}

func (h *ArtworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	id := r.PathValue("id")

	artwork, err := h.artworkService.ByID(identity, id)
	if errors.Is(err, repository.ErrArtworkNotFound) {
		respondError(w, http.StatusNotFound, "artwork not found")
		return
	}
	if err != nil {
		slog.Error("failed to get artwork", "error", err, "artwork_id", id)
		respondError(w, http.StatusInternalServerError, "failed to load artwork")
		return
	}

	respondJSON(w, http.StatusOK, NewArtworkResponse(artwork))
}

// SubmitApproval runs the proof approval gate. Validation failures come
// back 422 before any write; a race or repeat submission comes back 409.
func (h *ArtworkHandler) SubmitApproval(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	id := r.PathValue("id")

	var req service.ApprovalRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	artwork, err := h.approvalService.Submit(identity, id, &req)
	switch {
	case errors.Is(err, service.ErrChecklistIncomplete),
		errors.Is(err, service.ErrApproverNameMissing),
		errors.Is(err, service.ErrNotesRequired),
		errors.Is(err, service.ErrInvalidDecision):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, repository.ErrArtworkNotFound):
		respondError(w, http.StatusNotFound, "artwork not found")
		return
	case errors.Is(err, repository.ErrNotAwaitingApproval):
		respondError(w, http.StatusConflict, "artwork is not awaiting approval")
		return
	case err != nil:
		slog.Error("approval submission failed", "error", err, "artwork_id", id)
		respondError(w, http.StatusInternalServerError, "approval submission failed")
		return
	}

	respondJSON(w, http.StatusOK, NewArtworkResponse(artwork))
}

// Delete soft-deletes: the artwork moves to the bin, nothing is destroyed.
func (h *ArtworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	id := r.PathValue("id")

	err := h.artworkService.SoftDelete(identity, id)
	if errors.Is(err, repository.ErrArtworkNotFound) {
		respondError(w, http.StatusNotFound, "artwork not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete artwork", "error", err, "artwork_id", id)
		respondError(w, http.StatusInternalServerError, "failed to delete artwork")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "binned", "id": id})
}
