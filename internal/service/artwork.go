package service

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/proofdesk/portal/internal/model"
	"github.com/proofdesk/portal/internal/repository"
	"github.com/proofdesk/portal/internal/storage"
	"github.com/proofdesk/portal/internal/validation"
)

// UploadError reports a single failed file in a batch upload.
type UploadError struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// UploadResult carries the outcome per file: one bad file never aborts
// the rest of the batch.
type UploadResult struct {
	Uploaded []*model.ArtworkFile `json:"uploaded"`
	Errors   []UploadError        `json:"errors,omitempty"`
}

// ArtworkService owns artwork uploads and the bin (soft delete, restore,
// permanent delete).
type ArtworkService struct {
	repo     repository.ArtworkRepository
	storage  storage.Storage
	activity *ActivityService
}

func NewArtworkService(repo repository.ArtworkRepository, storage storage.Storage, activity *ActivityService) *ArtworkService {
	return &ArtworkService{
		repo:     repo,
		storage:  storage,
		activity: activity,
	}
}

// Upload stores a batch of artwork files. Each file is validated, saved to
// blob storage, then recorded; validation and upload failures are reported
// per file while the remaining files proceed.
func (s *ArtworkService) Upload(identity model.CustomerIdentity, orderID, orderNumber string, headers []*multipart.FileHeader) (*UploadResult, error) {
	if identity.IsZero() {
		return nil, fmt.Errorf("upload requires an authenticated customer")
	}

	result := &UploadResult{Uploaded: []*model.ArtworkFile{}}

	for _, header := range headers {
		artwork, err := s.uploadOne(identity, orderID, orderNumber, header)
		if err != nil {
			result.Errors = append(result.Errors, UploadError{
				Filename: header.Filename,
				Reason:   err.Error(),
			})
			continue
		}
		result.Uploaded = append(result.Uploaded, artwork)
	}

	if len(result.Uploaded) > 0 {
		s.activity.Record(identity, model.ActivityArtworkUploaded, map[string]any{
			"count":    len(result.Uploaded),
			"order_id": orderID,
		})
	}

	return result, nil
}

func (s *ArtworkService) uploadOne(identity model.CustomerIdentity, orderID, orderNumber string, header *multipart.FileHeader) (*model.ArtworkFile, error) {
	err := validation.ValidateFile(header, validation.ArtworkConstraints)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	id := uuid.New().String()
	storagePath := filepath.Join("artwork", id+filepath.Ext(header.Filename))

	err = s.storage.Save(storagePath, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	now := time.Now()
	artwork := &model.ArtworkFile{
		ID:          id,
		AccountID:   identity.AccountID,
		Email:       identity.EmailLower(),
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Name:        header.Filename,
		StorageURL:  s.storage.URL(storagePath),
		StoragePath: storagePath,
		MimeType:    header.Header.Get("Content-Type"),
		Size:        header.Size,
		Status:      model.ArtworkStatusPendingReview,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(artwork)
	if err != nil {
		// The blob is already up; clean it so failed rows don't leak storage
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create artwork record: %w", err)
	}

	return artwork, nil
}

// List returns the customer's active artwork, reconciled across both
// identity keys, newest first.
func (s *ArtworkService) List(identity model.CustomerIdentity) ([]*model.ArtworkFile, error) {
	if identity.IsZero() {
		return []*model.ArtworkFile{}, nil
	}

	artwork, err := s.repo.ActiveByIdentity(identity)
	if err != nil {
		return nil, err
	}
	return reconcileArtwork(artwork, false), nil
}

// ByID returns one artwork, hidden from customers it does not belong to.
func (s *ArtworkService) ByID(identity model.CustomerIdentity, id string) (*model.ArtworkFile, error) {
	artwork, err := s.repo.ByID(id)
	if err != nil {
		return nil, err
	}
	if !ownedBy(artwork, identity) {
		return nil, repository.ErrArtworkNotFound
	}
	return artwork, nil
}

// SoftDelete moves the artwork into the bin. The row survives; only the
// deletion timestamp is set.
func (s *ArtworkService) SoftDelete(identity model.CustomerIdentity, id string) error {
	_, err := s.ByID(identity, id)
	if err != nil {
		return err
	}

	err = s.repo.SoftDelete(id, time.Now())
	if err != nil {
		return err
	}

	s.activity.Record(identity, model.ActivityArtworkBinned, map[string]any{"artwork_id": id})
	return nil
}

// Restore clears the deletion timestamp; the artwork rejoins the active set.
func (s *ArtworkService) Restore(identity model.CustomerIdentity, id string) error {
	artwork, err := s.repo.ByID(id)
	if err != nil {
		return err
	}
	if !ownedBy(artwork, identity) {
		return repository.ErrArtworkNotFound
	}

	err = s.repo.Restore(id)
	if err != nil {
		return err
	}

	s.activity.Record(identity, model.ActivityArtworkRestored, map[string]any{"artwork_id": id})
	return nil
}

// PermanentlyDelete destroys a binned artwork and its blob. Artwork still
// in the active set is refused: destruction requires passing through the
// bin first.
func (s *ArtworkService) PermanentlyDelete(identity model.CustomerIdentity, id string) error {
	artwork, err := s.repo.ByID(id)
	if err != nil {
		return err
	}
	if !ownedBy(artwork, identity) {
		return repository.ErrArtworkNotFound
	}

	err = s.repo.PermanentlyDelete(id)
	if err != nil {
		return err
	}

	if artwork.StoragePath != "" {
		delErr := s.storage.Delete(artwork.StoragePath)
		if delErr != nil {
			slog.Warn("failed to delete artwork blob", "path", artwork.StoragePath, "error", delErr)
		}
	}

	s.activity.Record(identity, model.ActivityArtworkPurged, map[string]any{"artwork_id": id})
	return nil
}

// ownedBy reports whether the artwork is associated with the customer by
// either key: exact account id or case-insensitive email.
func ownedBy(artwork *model.ArtworkFile, identity model.CustomerIdentity) bool {
	if identity.IsZero() {
		return false
	}
	if identity.AccountID != "" && artwork.AccountID == identity.AccountID {
		return true
	}
	if identity.Email != "" && artwork.Email != "" && strings.EqualFold(artwork.Email, identity.Email) {
		return true
	}
	return false
}
