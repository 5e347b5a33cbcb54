package port

import (
	"context"
	"storefront-service/internal/core/domain"
)

// OrderEventsPort publishes order lifecycle events for downstream
// consumers (fulfillment, analytics). Publishing is best effort: the
// order response does not depend on it.
type OrderEventsPort interface {
	PublishOrderCreated(ctx context.Context, created domain.CreatedOrder, payload domain.OrderPayload) error
	Close() error
}
