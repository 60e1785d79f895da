package model

import (
	"time"
)

// Order is the peripheral order row the dashboard cross-links against.
// Its full shape belongs to the commerce backend; the portal only needs
// identity keys and display fields.
type Order struct {
	ID         string    `db:"id" json:"id"`
	AccountID  string    `db:"account_id" json:"-"`
	Email      string    `db:"email" json:"-"`
	Number     string    `db:"number" json:"number"`
	Status     string    `db:"status" json:"status"`
	TotalCents int64     `db:"total_cents" json:"total_cents"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
