package usecases_port

import (
	"context"
	"storefront-service/internal/core/domain"
)

type CreateOrderUseCase interface {
	Execute(ctx context.Context, payload domain.OrderPayload) (*domain.CreatedOrder, error)
}
