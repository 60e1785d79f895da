package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/proofdesk/portal/internal/model"
)

type DocumentRepository interface {
	Create(doc *model.Document) error
	ByIdentity(identity model.CustomerIdentity) ([]*model.Document, error)
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *model.Document) error {
	query := `INSERT INTO documents (id, account_id, email, title, url, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		doc.ID,
		doc.AccountID,
		doc.Email,
		doc.Title,
		doc.URL,
		doc.CreatedAt,
	)

	return err
}

func (r *documentRepository) ByIdentity(identity model.CustomerIdentity) ([]*model.Document, error) {
	clause, args := identityPredicate(identity, 1)
	if clause == "" {
		return []*model.Document{}, nil
	}

	var docs []*model.Document
	query := `SELECT * FROM documents WHERE ` + clause + ` ORDER BY created_at DESC`

	err := r.db.Select(&docs, query, args...)
	if err != nil {
		return nil, err
	}

	return docs, nil
}
