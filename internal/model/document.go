package model

import (
	"time"
)

// Document is a peripheral customer document (invoice, spec sheet) row.
type Document struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"-"`
	Email     string    `db:"email" json:"-"`
	Title     string    `db:"title" json:"title"`
	URL       string    `db:"url" json:"url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
