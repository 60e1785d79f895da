package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/proofdesk/portal/internal/model"
	"github.com/proofdesk/portal/internal/repository"
	"golang.org/x/sync/errgroup"
)

// DashboardSnapshot is one reconciled, deduplicated view of everything
// associated with a customer, however the rows are keyed.
type DashboardSnapshot struct {
	Orders         []*model.Order       `json:"orders"`
	Quotes         []*model.Quote       `json:"quotes"`
	Artwork        []*model.ArtworkFile `json:"artwork"`
	DeletedArtwork []*model.ArtworkFile `json:"deleted_artwork"`
	SavedItems     []*model.SavedItem   `json:"saved_items"`
	Documents      []*model.Document    `json:"documents"`
}

// Counts returns the aggregate totals the dashboard header shows.
func (s *DashboardSnapshot) Counts() map[string]int {
	return map[string]int{
		"orders":      len(s.Orders),
		"quotes":      len(s.Quotes),
		"artwork":     len(s.Artwork),
		"bin":         len(s.DeletedArtwork),
		"saved_items": len(s.SavedItems),
		"documents":   len(s.Documents),
	}
}

// ReconcilerService merges records that may be associated with a customer
// by account id, by email, or both, into one consistent per-customer view.
type ReconcilerService struct {
	artworkRepo   repository.ArtworkRepository
	orderRepo     repository.OrderRepository
	quoteRepo     repository.QuoteRepository
	savedItemRepo repository.SavedItemRepository
	documentRepo  repository.DocumentRepository
}

func NewReconcilerService(
	artworkRepo repository.ArtworkRepository,
	orderRepo repository.OrderRepository,
	quoteRepo repository.QuoteRepository,
	savedItemRepo repository.SavedItemRepository,
	documentRepo repository.DocumentRepository,
) *ReconcilerService {
	return &ReconcilerService{
		artworkRepo:   artworkRepo,
		orderRepo:     orderRepo,
		quoteRepo:     quoteRepo,
		savedItemRepo: savedItemRepo,
		documentRepo:  documentRepo,
	}
}

// Snapshot issues the per-collection lookups concurrently and joins them
// into one snapshot. A failed lookup degrades that collection to an empty
// list; partial results are always returned. A zero identity returns an
// empty snapshot without touching the store.
func (s *ReconcilerService) Snapshot(ctx context.Context, identity model.CustomerIdentity) *DashboardSnapshot {
	snapshot := &DashboardSnapshot{
		Orders:         []*model.Order{},
		Quotes:         []*model.Quote{},
		Artwork:        []*model.ArtworkFile{},
		DeletedArtwork: []*model.ArtworkFile{},
		SavedItems:     []*model.SavedItem{},
		Documents:      []*model.Document{},
	}

	if identity.IsZero() {
		return snapshot
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := s.orderRepo.ByIdentity(identity)
		if err != nil {
			slog.Warn("reconciliation lookup failed", "collection", "orders", "error", err)
			return nil
		}
		snapshot.Orders = orders
		return nil
	})

	g.Go(func() error {
		quotes, err := s.quoteRepo.ByIdentity(identity)
		if err != nil {
			slog.Warn("reconciliation lookup failed", "collection", "quotes", "error", err)
			return nil
		}
		snapshot.Quotes = quotes
		return nil
	})

	g.Go(func() error {
		artwork, err := s.artworkRepo.ActiveByIdentity(identity)
		if err != nil {
			slog.Warn("reconciliation lookup failed", "collection", "artwork", "error", err)
			return nil
		}
		snapshot.Artwork = reconcileArtwork(artwork, false)
		return nil
	})

	g.Go(func() error {
		deleted, err := s.artworkRepo.DeletedByIdentity(identity)
		if err != nil {
			slog.Warn("reconciliation lookup failed", "collection", "deleted_artwork", "error", err)
			return nil
		}
		snapshot.DeletedArtwork = reconcileArtwork(deleted, true)
		return nil
	})

	g.Go(func() error {
		items, err := s.savedItemRepo.ByIdentity(identity)
		if err != nil {
			slog.Warn("reconciliation lookup failed", "collection", "saved_items", "error", err)
			return nil
		}
		snapshot.SavedItems = items
		return nil
	})

	g.Go(func() error {
		docs, err := s.documentRepo.ByIdentity(identity)
		if err != nil {
			slog.Warn("reconciliation lookup failed", "collection", "documents", "error", err)
			return nil
		}
		snapshot.Documents = docs
		return nil
	})

	// Lookups never surface errors; the join is for synchronization only.
	_ = g.Wait()

	return snapshot
}

// reconcileArtwork is the merge step for artwork lists: the union keyed by
// record id, later entries winning when lookup paths returned overlapping
// rows, ordered newest first. The bin orders by deletion time, falling
// back to creation time.
func reconcileArtwork(lists []*model.ArtworkFile, byDeletedAt bool) []*model.ArtworkFile {
	seen := make(map[string]int, len(lists))
	merged := make([]*model.ArtworkFile, 0, len(lists))

	for _, artwork := range lists {
		idx, ok := seen[artwork.ID]
		if ok {
			merged[idx] = artwork
			continue
		}
		seen[artwork.ID] = len(merged)
		merged = append(merged, artwork)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return artworkSortTime(merged[i], byDeletedAt).After(artworkSortTime(merged[j], byDeletedAt))
	})

	return merged
}

func artworkSortTime(artwork *model.ArtworkFile, byDeletedAt bool) time.Time {
	if byDeletedAt && artwork.DeletedAt != nil {
		return artwork.DeletedAt.UTC()
	}
	return artwork.CreatedAt.UTC()
}
