package service

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/proofdesk/portal/internal/model"
	"github.com/proofdesk/portal/internal/repository"
	"github.com/stretchr/testify/require"
)

// fakeArtworkRepo is an in-memory ArtworkRepository that records the
// mutations it receives.
type fakeArtworkRepo struct {
	mu       sync.Mutex
	rows     map[string]*model.ArtworkFile
	applied  []repository.DecisionUpdate
	listErr  error
	applyErr error
}

func newFakeArtworkRepo() *fakeArtworkRepo {
	return &fakeArtworkRepo{rows: map[string]*model.ArtworkFile{}}
}

func (f *fakeArtworkRepo) Create(artwork *model.ArtworkFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[artwork.ID] = artwork
	return nil
}

func (f *fakeArtworkRepo) ByID(id string) (*model.ArtworkFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	artwork, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrArtworkNotFound
	}
	copied := *artwork
	return &copied, nil
}

func (f *fakeArtworkRepo) ActiveByIdentity(identity model.CustomerIdentity) ([]*model.ArtworkFile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.matching(identity, false), nil
}

func (f *fakeArtworkRepo) DeletedByIdentity(identity model.CustomerIdentity) ([]*model.ArtworkFile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.matching(identity, true), nil
}

func (f *fakeArtworkRepo) matching(identity model.CustomerIdentity, deleted bool) []*model.ArtworkFile {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.ArtworkFile
	for _, artwork := range f.rows {
		if artwork.Deleted() != deleted {
			continue
		}
		if (identity.AccountID != "" && artwork.AccountID == identity.AccountID) ||
			(identity.Email != "" && strings.EqualFold(artwork.Email, identity.Email)) {
			copied := *artwork
			out = append(out, &copied)
		}
	}
	return out
}

func (f *fakeArtworkRepo) ApplyDecision(id string, upd repository.DecisionUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return f.applyErr
	}
	artwork, ok := f.rows[id]
	if !ok || artwork.Status != model.ArtworkStatusProofReady || artwork.Deleted() {
		return repository.ErrNotAwaitingApproval
	}
	f.applied = append(f.applied, upd)
	artwork.Status = upd.Status
	artwork.Checklist = upd.Checklist
	artwork.ApprovalType = upd.ApprovalType
	artwork.ApproverName = upd.ApproverName
	artwork.ApproverCompany = upd.ApproverCompany
	artwork.ApprovalNotes = upd.ApprovalNotes
	artwork.ApprovalDate = &upd.ApprovalDate
	if upd.ApprovalType == model.ApprovalNotApproved {
		artwork.RevisionCount++
		artwork.CustomerComment = upd.ApprovalNotes
	}
	return nil
}

func (f *fakeArtworkRepo) SoftDelete(id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	artwork, ok := f.rows[id]
	if !ok || artwork.Deleted() {
		return repository.ErrArtworkNotFound
	}
	artwork.DeletedAt = &at
	return nil
}

func (f *fakeArtworkRepo) Restore(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	artwork, ok := f.rows[id]
	if !ok || !artwork.Deleted() {
		return repository.ErrNotInBin
	}
	artwork.DeletedAt = nil
	return nil
}

func (f *fakeArtworkRepo) PermanentlyDelete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	artwork, ok := f.rows[id]
	if !ok || !artwork.Deleted() {
		return repository.ErrNotInBin
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeArtworkRepo) decisionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applied)
}

// fakeCommentRepo keeps comments in order of creation.
type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*model.ArtworkComment
}

func (f *fakeCommentRepo) Create(comment *model.ArtworkComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakeCommentRepo) ByArtwork(artworkID string, limit, offset int) ([]*model.ArtworkComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.ArtworkComment
	for i := len(f.comments) - 1; i >= 0; i-- {
		if f.comments[i].ArtworkID == artworkID {
			out = append(out, f.comments[i])
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCommentRepo) CountByArtwork(artworkID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, c := range f.comments {
		if c.ArtworkID == artworkID {
			count++
		}
	}
	return count, nil
}

// fakeStorage records saves and deletes without touching a network.
type fakeStorage struct {
	mu      sync.Mutex
	saved   map[string][]byte
	deleted []string
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string][]byte{}}
}

func (f *fakeStorage) Save(path string, file io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[path] = data
	return nil
}

func (f *fakeStorage) Delete(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) URL(path string) string {
	return "https://cdn.example.com/" + path
}

// fakeActivityRepo collects activity entries; Record is asynchronous so
// access is guarded.
type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []*model.ActivityEntry
}

func (f *fakeActivityRepo) Create(entry *model.ActivityEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

var errLookupDown = errors.New("store unavailable")

type fakeOrderRepo struct {
	orders []*model.Order
	err    error
}

func (f *fakeOrderRepo) Create(order *model.Order) error { return nil }
func (f *fakeOrderRepo) ByIdentity(identity model.CustomerIdentity) ([]*model.Order, error) {
	return f.orders, f.err
}

type fakeQuoteRepo struct {
	quotes []*model.Quote
	err    error
}

func (f *fakeQuoteRepo) Create(quote *model.Quote) error { return nil }
func (f *fakeQuoteRepo) ByIdentity(identity model.CustomerIdentity) ([]*model.Quote, error) {
	return f.quotes, f.err
}

type fakeSavedItemRepo struct {
	items []*model.SavedItem
	err   error
}

func (f *fakeSavedItemRepo) Create(item *model.SavedItem) error { return nil }
func (f *fakeSavedItemRepo) ByIdentity(identity model.CustomerIdentity) ([]*model.SavedItem, error) {
	return f.items, f.err
}

type fakeDocumentRepo struct {
	docs []*model.Document
	err  error
}

func (f *fakeDocumentRepo) Create(doc *model.Document) error { return nil }
func (f *fakeDocumentRepo) ByIdentity(identity model.CustomerIdentity) ([]*model.Document, error) {
	return f.docs, f.err
}

func testNotifyService() *NotifyService {
	return NewNotifyService("", "noreply@example.com", "prepress@example.com", "https://portal.example.com", "Proofdesk", true)
}

func testActivityService() (*ActivityService, *fakeActivityRepo) {
	repo := &fakeActivityRepo{}
	return NewActivityService(repo), repo
}

// multipartFile builds a real multipart.FileHeader carrying content.
func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

// pngBytes is a minimal payload that sniffs as image/png.
func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
}

func pdfBytes() []byte {
	return append([]byte("%PDF-1.4\n"), make([]byte, 64)...)
}
