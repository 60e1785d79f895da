package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/proofdesk/portal/internal/model"
)

type ActivityRepository interface {
	Create(entry *model.ActivityEntry) error
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(entry *model.ActivityEntry) error {
	query := `INSERT INTO activity_log (id, account_id, email, action, details, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.AccountID,
		entry.Email,
		entry.Action,
		entry.Details,
		entry.CreatedAt,
	)

	return err
}
