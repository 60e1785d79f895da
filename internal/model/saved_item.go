package model

import (
	"time"
)

// SavedItem is a product configuration the customer bookmarked.
type SavedItem struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"-"`
	Email     string    `db:"email" json:"-"`
	ProductID string    `db:"product_id" json:"product_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
