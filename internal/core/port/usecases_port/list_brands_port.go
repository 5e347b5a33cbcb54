package usecases_port

import (
	"context"
	"storefront-service/internal/core/domain"
)

type ListBrandsUseCase interface {
	Execute(ctx context.Context, withCount bool) ([]domain.Brand, error)
}
