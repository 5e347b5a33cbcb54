package usecase

import (
	"context"
	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"

	"github.com/google/uuid"
)

type GetAromaboxDetailsUseCase struct {
	storage port.CatalogStoragePort
}

func NewGetAromaboxDetailsUseCase(storage port.CatalogStoragePort) *GetAromaboxDetailsUseCase {
	return &GetAromaboxDetailsUseCase{storage: storage}
}

func (uc *GetAromaboxDetailsUseCase) Execute(ctx context.Context, boxID uuid.UUID, withRelated bool, relatedLimit int) (*domain.AromaboxDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "GetAromaboxDetails",
		"aromabox_id": boxID.String(),
	})

	box, err := uc.storage.GetAromaboxByID(ctx, boxID)
	if err != nil {
		logger.Error("Failed to load aromabox", err, nil)
		return nil, err
	}

	details := &domain.AromaboxDetails{Aromabox: *box}

	if withRelated {
		related, err := uc.storage.FindRelatedAromaboxes(ctx, *box, relatedLimit)
		if err != nil {
			logger.Warn("Failed to load related aromaboxes", port.Fields{"error": err.Error()})
		} else {
			details.Related = related
		}
	}

	return details, nil
}
