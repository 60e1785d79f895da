package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/proofdesk/portal/internal/model"
)

type QuoteRepository interface {
	Create(quote *model.Quote) error
	ByIdentity(identity model.CustomerIdentity) ([]*model.Quote, error)
}

type quoteRepository struct {
	db *sqlx.DB
}

func NewQuoteRepository(db *sqlx.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(quote *model.Quote) error {
	query := `INSERT INTO quotes (id, account_id, email, number, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		quote.ID,
		quote.AccountID,
		quote.Email,
		quote.Number,
		quote.Status,
		quote.CreatedAt,
	)

	return err
}

func (r *quoteRepository) ByIdentity(identity model.CustomerIdentity) ([]*model.Quote, error) {
	clause, args := identityPredicate(identity, 1)
	if clause == "" {
		return []*model.Quote{}, nil
	}

	var quotes []*model.Quote
	query := `SELECT * FROM quotes WHERE ` + clause + ` ORDER BY created_at DESC`

	err := r.db.Select(&quotes, query, args...)
	if err != nil {
		return nil, err
	}

	return quotes, nil
}
