package usecases_port

import (
	"context"
	"storefront-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetAromaboxDetailsUseCase interface {
	Execute(ctx context.Context, boxID uuid.UUID, withRelated bool, relatedLimit int) (*domain.AromaboxDetails, error)
}
