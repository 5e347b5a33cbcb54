package usecases_port

import (
	"context"
	"storefront-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetProductDetailsUseCase interface {
	Execute(ctx context.Context, productID uuid.UUID, withRelated bool, relatedLimit int) (*domain.ProductDetails, error)
}
