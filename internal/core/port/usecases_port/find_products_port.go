package usecases_port

import (
	"context"
	"storefront-service/internal/core/domain"
)

type FindProductsUseCase interface {
	Execute(ctx context.Context, query domain.ProductListQuery) (*domain.PaginatedProducts, error)
}
