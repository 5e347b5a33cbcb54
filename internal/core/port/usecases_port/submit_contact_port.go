package usecases_port

import (
	"context"
	"storefront-service/internal/core/domain"
)

type SubmitContactUseCase interface {
	Execute(ctx context.Context, payload domain.ContactPayload) error
}
