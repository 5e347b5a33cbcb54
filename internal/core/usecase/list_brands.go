package usecase

import (
	"context"
	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
)

type ListBrandsUseCase struct {
	storage port.CatalogStoragePort
}

func NewListBrandsUseCase(storage port.CatalogStoragePort) *ListBrandsUseCase {
	return &ListBrandsUseCase{storage: storage}
}

func (uc *ListBrandsUseCase) Execute(ctx context.Context, withCount bool) ([]domain.Brand, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ListBrands",
		"with_count": withCount,
	})

	brands, err := uc.storage.ListBrands(ctx, withCount)
	if err != nil {
		logger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return brands, nil
}
