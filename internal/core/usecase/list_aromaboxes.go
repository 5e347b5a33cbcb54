package usecase

import (
	"context"
	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
)

type ListAromaboxesUseCase struct {
	storage port.CatalogStoragePort
}

func NewListAromaboxesUseCase(storage port.CatalogStoragePort) *ListAromaboxesUseCase {
	return &ListAromaboxesUseCase{storage: storage}
}

func (uc *ListAromaboxesUseCase) Execute(ctx context.Context) ([]domain.Aromabox, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListAromaboxes",
	})

	boxes, err := uc.storage.ListAromaboxes(ctx)
	if err != nil {
		logger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return boxes, nil
}
