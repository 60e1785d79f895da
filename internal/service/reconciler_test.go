package service

import (
	"context"
	"testing"
	"time"

	"github.com/proofdesk/portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotZeroIdentity(t *testing.T) {
	t.Parallel()

	svc := NewReconcilerService(
		newFakeArtworkRepo(),
		&fakeOrderRepo{err: errLookupDown},
		&fakeQuoteRepo{err: errLookupDown},
		&fakeSavedItemRepo{err: errLookupDown},
		&fakeDocumentRepo{err: errLookupDown},
	)

	// A zero identity short-circuits before any lookup, so the failing
	// repos are never consulted.
	snapshot := svc.Snapshot(context.Background(), model.CustomerIdentity{})
	require.NotNil(t, snapshot)
	assert.Empty(t, snapshot.Orders)
	assert.Empty(t, snapshot.Quotes)
	assert.Empty(t, snapshot.Artwork)
	assert.Empty(t, snapshot.DeletedArtwork)
	assert.Empty(t, snapshot.SavedItems)
	assert.Empty(t, snapshot.Documents)
}

func TestSnapshotMergesAllCollections(t *testing.T) {
	t.Parallel()

	identity := model.NewCustomerIdentity("acct_1", "kim@example.com")

	artworkRepo := newFakeArtworkRepo()
	require.NoError(t, artworkRepo.Create(&model.ArtworkFile{
		ID:        "art-1",
		AccountID: "acct_1",
		Name:      "box.pdf",
		Status:    model.ArtworkStatusInReview,
		CreatedAt: time.Now(),
	}))
	deletedAt := time.Now()
	require.NoError(t, artworkRepo.Create(&model.ArtworkFile{
		ID:        "art-2",
		Email:     "kim@example.com",
		Name:      "label.pdf",
		Status:    model.ArtworkStatusPendingReview,
		CreatedAt: time.Now().Add(-time.Hour),
		DeletedAt: &deletedAt,
	}))

	svc := NewReconcilerService(
		artworkRepo,
		&fakeOrderRepo{orders: []*model.Order{{ID: "ord-1"}, {ID: "ord-2"}}},
		&fakeQuoteRepo{quotes: []*model.Quote{{ID: "quo-1"}}},
		&fakeSavedItemRepo{items: []*model.SavedItem{{ID: "sav-1"}}},
		&fakeDocumentRepo{docs: []*model.Document{{ID: "doc-1"}}},
	)

	snapshot := svc.Snapshot(context.Background(), identity)

	require.Len(t, snapshot.Artwork, 1)
	assert.Equal(t, "art-1", snapshot.Artwork[0].ID)
	require.Len(t, snapshot.DeletedArtwork, 1)
	assert.Equal(t, "art-2", snapshot.DeletedArtwork[0].ID)

	counts := snapshot.Counts()
	assert.Equal(t, 2, counts["orders"])
	assert.Equal(t, 1, counts["quotes"])
	assert.Equal(t, 1, counts["artwork"])
	assert.Equal(t, 1, counts["bin"])
	assert.Equal(t, 1, counts["saved_items"])
	assert.Equal(t, 1, counts["documents"])
}

func TestSnapshotDegradesFailedLookups(t *testing.T) {
	t.Parallel()

	artworkRepo := newFakeArtworkRepo()
	require.NoError(t, artworkRepo.Create(&model.ArtworkFile{
		ID:        "art-1",
		AccountID: "acct_1",
		Status:    model.ArtworkStatusProofReady,
		CreatedAt: time.Now(),
	}))

	svc := NewReconcilerService(
		artworkRepo,
		&fakeOrderRepo{err: errLookupDown},
		&fakeQuoteRepo{err: errLookupDown},
		&fakeSavedItemRepo{items: []*model.SavedItem{{ID: "sav-1"}}},
		&fakeDocumentRepo{err: errLookupDown},
	)

	snapshot := svc.Snapshot(context.Background(), model.NewCustomerIdentity("acct_1", ""))

	// Broken collections come back empty, the healthy ones intact.
	assert.Empty(t, snapshot.Orders)
	assert.Empty(t, snapshot.Quotes)
	assert.Empty(t, snapshot.Documents)
	assert.Len(t, snapshot.SavedItems, 1)
	assert.Len(t, snapshot.Artwork, 1)
}

func TestReconcileArtworkDeduplicates(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	older := &model.ArtworkFile{ID: "art-1", Name: "stale", CreatedAt: base}
	newer := &model.ArtworkFile{ID: "art-1", Name: "fresh", CreatedAt: base}
	other := &model.ArtworkFile{ID: "art-2", Name: "other", CreatedAt: base.Add(time.Hour)}

	merged := reconcileArtwork([]*model.ArtworkFile{older, other, newer}, false)

	require.Len(t, merged, 2)
	// Duplicate ids collapse, the later entry winning; order is by
	// creation time, newest first.
	assert.Equal(t, "art-2", merged[0].ID)
	assert.Equal(t, "art-1", merged[1].ID)
	assert.Equal(t, "fresh", merged[1].Name)
}

func TestReconcileArtworkOrdersBinByDeletionTime(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	binnedLater := base.Add(2 * time.Hour)
	binnedEarlier := base.Add(time.Hour)

	// art-old was created first but binned last, so it leads the bin.
	artOld := &model.ArtworkFile{ID: "art-old", CreatedAt: base.Add(-time.Hour), DeletedAt: &binnedLater}
	artNew := &model.ArtworkFile{ID: "art-new", CreatedAt: base, DeletedAt: &binnedEarlier}
	artNoStamp := &model.ArtworkFile{ID: "art-nostamp", CreatedAt: base.Add(3 * time.Hour)}

	merged := reconcileArtwork([]*model.ArtworkFile{artNew, artOld, artNoStamp}, true)

	require.Len(t, merged, 3)
	assert.Equal(t, "art-nostamp", merged[0].ID)
	assert.Equal(t, "art-old", merged[1].ID)
	assert.Equal(t, "art-new", merged[2].ID)
}
