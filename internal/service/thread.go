package service

import (
	"errors"
	"fmt"
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

var (
	ErrEmptyComment = errors.New("comment requires text or a file")
)

const (
	// CommentPageSize bounds one page of the thread. The thread grows
	// without limit over an artwork's life, so reads are always paged.
	CommentPageSize = 50
)

// ThreadService is the append-only conversation attached to one artwork.
type ThreadService struct {
	comments repository.CommentRepository
	artwork  repository.ArtworkRepository
	storage  storage.Storage
	notify   *NotifyService
	activity *ActivityService
}

func NewThreadService(
	comments repository.CommentRepository,
	artwork repository.ArtworkRepository,
	storage storage.Storage,
	notify *NotifyService,
	activity *ActivityService,
) *ThreadService {
	return &ThreadService{
		comments: comments,
		artwork:  artwork,
		storage:  storage,
		notify:   notify,
		activity: activity,
	}
}

// Post appends one message, optionally carrying a file. Text or file is
// required. A file is uploaded first and makes the message kind "file"
// even when text accompanies it. The counterparty notification is
// fire-and-forget: its failure never fails the comment.
func (s *ThreadService) Post(identity model.CustomerIdentity, artworkID, authorName, text string, header *multipart.FileHeader) (*model.ArtworkComment, error) {
	text = strings.TrimSpace(text)
	if text == "" && header == nil {
		return nil, ErrEmptyComment
	}

	artwork, err := s.artwork.ByID(artworkID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(artwork, identity) {
		return nil, repository.ErrArtworkNotFound
	}

	comment := &model.ArtworkComment{
		ID:          uuid.New().String(),
		ArtworkID:   artworkID,
		AuthorRole:  model.CommentAuthorCustomer,
		AuthorName:  authorName,
		AuthorEmail: identity.EmailLower(),
		Message:     text,
		Kind:        model.CommentKindText,
		CreatedAt:   time.Now(),
	}

	if header != nil {
		err = validation.ValidateFile(header, validation.AttachmentConstraints)
		if err != nil {
			return nil, err
		}

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open attachment: %w", err)
		}
		defer func() { _ = file.Close() }()

		storagePath := filepath.Join("attachments", artworkID, comment.ID+filepath.Ext(header.Filename))
		err = s.storage.Save(storagePath, file)
		if err != nil {
			return nil, fmt.Errorf("failed to save attachment: %w", err)
		}

		comment.Kind = model.CommentKindFile
		comment.FileURL = s.storage.URL(storagePath)
		comment.FileName = header.Filename
		comment.FileSize = header.Size
		comment.FileType = header.Header.Get("Content-Type")
	}

	err = s.comments.Create(comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.activity.Record(identity, model.ActivityCommentPosted, map[string]any{
		"artwork_id": artworkID,
		"kind":       comment.Kind,
	})

	go s.notify.NotifyNewComment(artworkID, artwork.Name, comment.AuthorRole, artwork.Email)

	return comment, nil
}

// List returns one page of the thread, newest first.
func (s *ThreadService) List(identity model.CustomerIdentity, artworkID string, limit, offset int) ([]*model.ArtworkComment, error) {
	artwork, err := s.artwork.ByID(artworkID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(artwork, identity) {
		return nil, repository.ErrArtworkNotFound
	}

	if limit <= 0 || limit > CommentPageSize {
		limit = CommentPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return s.comments.ByArtwork(artworkID, limit, offset)
}
