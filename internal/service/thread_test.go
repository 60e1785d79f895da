package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/proofdesk/portal/internal/model"
	"github.com/proofdesk/portal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newThreadService(t *testing.T) (*ThreadService, *fakeArtworkRepo, *fakeCommentRepo, *fakeStorage) {
	t.Helper()
	artworkRepo := newFakeArtworkRepo()
	commentRepo := &fakeCommentRepo{}
	store := newFakeStorage()
	activity, _ := testActivityService()
	svc := NewThreadService(commentRepo, artworkRepo, store, testNotifyService(), activity)
	return svc, artworkRepo, commentRepo, store
}

func TestPostTextComment(t *testing.T) {
	t.Parallel()

	svc, artworkRepo, commentRepo, _ := newThreadService(t)
	require.NoError(t, artworkRepo.Create(proofReadyArtwork("art-1")))

	identity := model.NewCustomerIdentity("acct_1", "Kim@Example.com")
	comment, err := svc.Post(identity, "art-1", "Kim Lee", "  please fix the barcode  ", nil)
	require.NoError(t, err)

	assert.Equal(t, "please fix the barcode", comment.Message)
	assert.Equal(t, model.CommentKindText, comment.Kind)
	assert.Equal(t, model.CommentAuthorCustomer, comment.AuthorRole)
	assert.Equal(t, "Kim Lee", comment.AuthorName)
	assert.Equal(t, "kim@example.com", comment.AuthorEmail)
	assert.False(t, comment.HasAttachment())

	count, err := commentRepo.CountByArtwork("art-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPostRejectsEmptyComment(t *testing.T) {
	t.Parallel()

	svc, artworkRepo, commentRepo, _ := newThreadService(t)
	require.NoError(t, artworkRepo.Create(proofReadyArtwork("art-1")))

	_, err := svc.Post(model.NewCustomerIdentity("acct_1", ""), "art-1", "Kim Lee", "   ", nil)
	require.ErrorIs(t, err, ErrEmptyComment)

	count, err := commentRepo.CountByArtwork("art-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostFileComment(t *testing.T) {
	t.Parallel()

	svc, artworkRepo, _, store := newThreadService(t)
	require.NoError(t, artworkRepo.Create(proofReadyArtwork("art-1")))

	header := multipartFile(t, "reference.png", pngBytes())
	comment, err := svc.Post(model.NewCustomerIdentity("acct_1", ""), "art-1", "Kim Lee", "", header)
	require.NoError(t, err)

	assert.Equal(t, model.CommentKindFile, comment.Kind)
	assert.Empty(t, comment.Message)
	assert.Equal(t, "reference.png", comment.FileName)
	assert.NotEmpty(t, comment.FileURL)
	assert.True(t, comment.HasAttachment())
	assert.Equal(t, "Uploaded: reference.png", comment.DisplayText())

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.saved, 1)
}

func TestPostFileWithTextKeepsBoth(t *testing.T) {
	t.Parallel()

	svc, artworkRepo, _, _ := newThreadService(t)
	require.NoError(t, artworkRepo.Create(proofReadyArtwork("art-1")))

	header := multipartFile(t, "updated.pdf", pdfBytes())
	comment, err := svc.Post(model.NewCustomerIdentity("acct_1", ""), "art-1", "Kim Lee", "new revision attached", header)
	require.NoError(t, err)

	// A file makes the message kind "file" even with accompanying text,
	// and the typed text still wins for display.
	assert.Equal(t, model.CommentKindFile, comment.Kind)
	assert.Equal(t, "new revision attached", comment.Message)
	assert.Equal(t, "new revision attached", comment.DisplayText())
}

func TestPostRejectsOversizedAttachment(t *testing.T) {
	t.Parallel()

	svc, artworkRepo, commentRepo, store := newThreadService(t)
	require.NoError(t, artworkRepo.Create(proofReadyArtwork("art-1")))

	big := append(pngBytes(), make([]byte, 11<<20)...)
	header := multipartFile(t, "huge.png", big)

	_, err := svc.Post(model.NewCustomerIdentity("acct_1", ""), "art-1", "Kim Lee", "", header)
	require.Error(t, err)

	count, err := commentRepo.CountByArtwork("art-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.saved)
}

func TestPostHiddenFromStrangers(t *testing.T) {
	t.Parallel()

	svc, artworkRepo, _, _ := newThreadService(t)
	require.NoError(t, artworkRepo.Create(proofReadyArtwork("art-1")))

	_, err := svc.Post(model.NewCustomerIdentity("acct_other", "other@example.com"), "art-1", "Someone", "hello", nil)
	require.ErrorIs(t, err, repository.ErrArtworkNotFound)
}

func TestListPagesNewestFirst(t *testing.T) {
	t.Parallel()

	svc, artworkRepo, commentRepo, _ := newThreadService(t)
	require.NoError(t, artworkRepo.Create(proofReadyArtwork("art-1")))

	for i := 0; i < 5; i++ {
		require.NoError(t, commentRepo.Create(&model.ArtworkComment{
			ID:        fmt.Sprintf("com-%d", i),
			ArtworkID: "art-1",
			Message:   fmt.Sprintf("message %d", i),
			Kind:      model.CommentKindText,
			CreatedAt: time.Now(),
		}))
	}

	identity := model.NewCustomerIdentity("acct_1", "")

	page, err := svc.List(identity, "art-1", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "com-4", page[0].ID)
	assert.Equal(t, "com-3", page[1].ID)

	page, err = svc.List(identity, "art-1", 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "com-0", page[0].ID)
}

func TestListClampsLimit(t *testing.T) {
	t.Parallel()

	svc, artworkRepo, commentRepo, _ := newThreadService(t)
	require.NoError(t, artworkRepo.Create(proofReadyArtwork("art-1")))

	for i := 0; i < CommentPageSize+10; i++ {
		require.NoError(t, commentRepo.Create(&model.ArtworkComment{
			ID:        fmt.Sprintf("com-%d", i),
			ArtworkID: "art-1",
			Message:   "m",
			Kind:      model.CommentKindText,
			CreatedAt: time.Now(),
		}))
	}

	identity := model.NewCustomerIdentity("acct_1", "")

	page, err := svc.List(identity, "art-1", 0, 0)
	require.NoError(t, err)
	assert.Len(t, page, CommentPageSize)

	page, err = svc.List(identity, "art-1", CommentPageSize*10, -3)
	require.NoError(t, err)
	assert.Len(t, page, CommentPageSize)
}

func TestListUnknownArtwork(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newThreadService(t)

	_, err := svc.List(model.NewCustomerIdentity("acct_1", ""), "missing", 10, 0)
	require.ErrorIs(t, err, repository.ErrArtworkNotFound)
}
