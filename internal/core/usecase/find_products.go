package usecase

import (
	"context"
	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
)

type FindProductsUseCase struct {
	storage port.CatalogStoragePort
}

func NewFindProductsUseCase(storage port.CatalogStoragePort) *FindProductsUseCase {
	return &FindProductsUseCase{storage: storage}
}

func (uc *FindProductsUseCase) Execute(ctx context.Context, query domain.ProductListQuery) (*domain.PaginatedProducts, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "FindProducts",
		"sort":     query.Sort,
		"page":     query.Page,
		"per_page": query.PerPage,
	})

	result, err := uc.storage.FindProducts(ctx, query)
	if err != nil {
		logger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	logger.Info("Products found", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Items),
	})
	return result, nil
}
