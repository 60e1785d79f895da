package model

import (
	"time"
)

// Quote is a peripheral quote-request row, reconciled for display only.
type Quote struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"-"`
	Email     string    `db:"email" json:"-"`
	Number    string    `db:"number" json:"number"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
