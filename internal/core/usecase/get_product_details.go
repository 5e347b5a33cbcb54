package usecase

import (
	"context"
	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"

	"github.com/google/uuid"
)

type GetProductDetailsUseCase struct {
	storage port.CatalogStoragePort
}

func NewGetProductDetailsUseCase(storage port.CatalogStoragePort) *GetProductDetailsUseCase {
	return &GetProductDetailsUseCase{storage: storage}
}

func (uc *GetProductDetailsUseCase) Execute(ctx context.Context, productID uuid.UUID, withRelated bool, relatedLimit int) (*domain.ProductDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetProductDetails",
		"product_id": productID.String(),
	})

	product, err := uc.storage.GetProductByID(ctx, productID)
	if err != nil {
		logger.Error("Failed to load product", err, nil)
		return nil, err
	}

	details := &domain.ProductDetails{Product: *product}

	if withRelated {
		// Recommendations are best effort: a failure here must not turn a
		// perfectly good detail response into an error.
		related, err := uc.storage.FindRelatedProducts(ctx, *product, relatedLimit)
		if err != nil {
			logger.Warn("Failed to load related products", port.Fields{"error": err.Error()})
		} else {
			details.Related = related
		}
	}

	return details, nil
}
