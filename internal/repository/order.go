package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/proofdesk/portal/internal/model"
)

// OrderRepository is read-mostly from the portal's side: orders are
// created by the commerce backend, the portal reconciles them for display.
type OrderRepository interface {
	Create(order *model.Order) error
	ByIdentity(identity model.CustomerIdentity) ([]*model.Order, error)
}

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	query := `INSERT INTO orders (id, account_id, email, number, status, total_cents, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		order.ID,
		order.AccountID,
		order.Email,
		order.Number,
		order.Status,
		order.TotalCents,
		order.CreatedAt,
	)

	return err
}

func (r *orderRepository) ByIdentity(identity model.CustomerIdentity) ([]*model.Order, error) {
	clause, args := identityPredicate(identity, 1)
	if clause == "" {
		return []*model.Order{}, nil
	}

	var orders []*model.Order
	query := `SELECT * FROM orders WHERE ` + clause + ` ORDER BY created_at DESC`

	err := r.db.Select(&orders, query, args...)
	if err != nil {
		return nil, err
	}

	return orders, nil
}
