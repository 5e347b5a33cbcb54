package port

import (
	"context"
	"storefront-service/internal/core/domain"

	"github.com/google/uuid"
)

// CatalogStoragePort is the read side of the product store.
type CatalogStoragePort interface {
	// FindProducts runs a validated catalog query and returns one page of
	// rows together with the exact total count of matches.
	FindProducts(ctx context.Context, query domain.ProductListQuery) (*domain.PaginatedProducts, error)

	// GetProductByID returns a single product or domain.ErrNotFound.
	GetProductByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error)

	// FindRelatedProducts returns up to limit products sharing the brand
	// or gender of the given product, excluding the product itself.
	FindRelatedProducts(ctx context.Context, product domain.Product, limit int) ([]domain.Product, error)

	// ListBrands returns all brands ordered by name, with per-brand
	// product counts when withCount is set.
	ListBrands(ctx context.Context, withCount bool) ([]domain.Brand, error)

	// ListAromaboxes returns all perfume sets ordered by name.
	ListAromaboxes(ctx context.Context) ([]domain.Aromabox, error)

	// GetAromaboxByID returns a single perfume set or domain.ErrNotFound.
	GetAromaboxByID(ctx context.Context, boxID uuid.UUID) (*domain.Aromabox, error)

	// FindRelatedAromaboxes returns up to limit sets for the same gender,
	// excluding the set itself.
	FindRelatedAromaboxes(ctx context.Context, box domain.Aromabox, limit int) ([]domain.Aromabox, error)
}
