package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/proofdesk/portal/internal/model"
)

type SavedItemRepository interface {
	Create(item *model.SavedItem) error
	ByIdentity(identity model.CustomerIdentity) ([]*model.SavedItem, error)
}

type savedItemRepository struct {
	db *sqlx.DB
}

func NewSavedItemRepository(db *sqlx.DB) SavedItemRepository {
	return &savedItemRepository{db: db}
}

func (r *savedItemRepository) Create(item *model.SavedItem) error {
	query := `INSERT INTO saved_items (id, account_id, email, product_id, title, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		item.ID,
		item.AccountID,
		item.Email,
		item.ProductID,
		item.Title,
		item.CreatedAt,
	)

	return err
}

func (r *savedItemRepository) ByIdentity(identity model.CustomerIdentity) ([]*model.SavedItem, error) {
	clause, args := identityPredicate(identity, 1)
	if clause == "" {
		return []*model.SavedItem{}, nil
	}

	var items []*model.SavedItem
	query := `SELECT * FROM saved_items WHERE ` + clause + ` ORDER BY created_at DESC`

	err := r.db.Select(&items, query, args...)
	if err != nil {
		return nil, err
	}

	return items, nil
}
