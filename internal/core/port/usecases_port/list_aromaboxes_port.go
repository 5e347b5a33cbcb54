package usecases_port

import (
	"context"
	"storefront-service/internal/core/domain"
)

type ListAromaboxesUseCase interface {
	Execute(ctx context.Context) ([]domain.Aromabox, error)
}
