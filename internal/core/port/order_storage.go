package port

import (
	"context"
	"storefront-service/internal/core/domain"
)

// OrderStoragePort persists checkout submissions.
type OrderStoragePort interface {
	// CreateOrder writes the order row and its line items in one
	// transaction and returns the generated id and order number.
	CreateOrder(ctx context.Context, payload domain.OrderPayload) (*domain.CreatedOrder, error)
}
