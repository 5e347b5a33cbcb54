package postgres

import (
	"context"
	"fmt"

	"storefront-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderRepository implements OrderStoragePort over PostgreSQL. The
// order row and all line items are written in one transaction: a
// half-written order must never be acknowledged to the customer.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) (*OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &OrderRepository{pool: pool}, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, payload domain.OrderPayload) (*domain.CreatedOrder, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var created domain.CreatedOrder
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (
			status, first_name, last_name, phone, email, contact_method,
			city, street, house, apartment, postal_code,
			subtotal, shipping, tax, total, notes
		) VALUES (
			'new', $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		RETURNING id, order_number, status, created_at`,
		payload.FirstName, payload.LastName, payload.Phone, payload.Email, payload.ContactMethod,
		payload.City, payload.Street, payload.House, nullable(payload.Apartment), payload.PostalCode,
		payload.Subtotal, payload.Shipping, payload.Tax, payload.Total, nullable(payload.Notes),
	).Scan(&created.ID, &created.OrderNumber, &created.Status, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, item := range payload.Items {
		batch.Queue(`
			INSERT INTO order_items (
				order_id, product_id, product_name, variant_id, variant_label, price, quantity
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			created.ID, nullable(item.ProductID), item.Name,
			nullable(item.VariantID), nullable(item.VariantLabel),
			item.Price, item.Qty,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range payload.Items {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return nil, fmt.Errorf("failed to insert order items: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to close order items batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}
	return &created, nil
}

// nullable maps empty strings to SQL NULL.
func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
