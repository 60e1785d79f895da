package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/proofdesk/portal/internal/ctxkeys"
	"github.com/proofdesk/portal/internal/repository"
	"github.com/proofdesk/portal/internal/service"
)

type ThreadHandler struct {
	threadService *service.ThreadService
	maxUploadSize int64
}

func NewThreadHandler(threadService *service.ThreadService, maxUploadSize int64) *ThreadHandler {
	return &ThreadHandler{
		threadService: threadService,
		maxUploadSize: maxUploadSize,
	}
}

func (h *ThreadHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	artworkID := r.PathValue("id")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	comments, err := h.threadService.List(identity, artworkID, limit, offset)
	if errors.Is(err, repository.ErrArtworkNotFound) {
		respondError(w, http.StatusNotFound, "artwork not found")
		return
	}
	if err != nil {
		slog.Error("failed to list comments", "error", err, "artwork_id", artworkID)
		respondError(w, http.StatusInternalServerError, "failed to load comments")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"comments": NewCommentResponses(comments),
	})
}

// Post appends a comment, multipart with optional "file" and "message"
// fields. One of the two is required.
func (h *ThreadHandler) Post(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	artworkID := r.PathValue("id")

	err := r.ParseMultipartForm(h.maxUploadSize + (1 << 20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	message := r.FormValue("message")

	var header *multipart.FileHeader
	if files := r.MultipartForm.File["file"]; len(files) > 0 {
		header = files[0]
	}

	authorName := ctxkeys.Name(r.Context())

	comment, err := h.threadService.Post(identity, artworkID, authorName, message, header)
	switch {
	case errors.Is(err, service.ErrEmptyComment):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, repository.ErrArtworkNotFound):
		respondError(w, http.StatusNotFound, "artwork not found")
		return
	case err != nil:
		slog.Error("failed to post comment", "error", err, "artwork_id", artworkID)
		respondError(w, http.StatusInternalServerError, "failed to post comment")
		return
	}

	respondJSON(w, http.StatusCreated, NewCommentResponse(comment))
}
