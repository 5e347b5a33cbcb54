package rest

import "storefront-service/internal/core/domain"

// ProductsListResponse mirrors the paginated catalog contract:
// items plus the exact total so clients can compute remaining pages.
type ProductsListResponse struct {
	Items   []domain.Product `json:"items"`
	Count   int              `json:"count"`
	Page    int              `json:"page"`
	PerPage int              `json:"perPage"`
}

type ProductDetailResponse struct {
	domain.Product
	RelatedProducts []domain.Product `json:"related_products,omitempty"`
}

type AromaboxDetailResponse struct {
	domain.Aromabox
	RelatedAromaboxes []domain.Aromabox `json:"related_aromaboxes,omitempty"`
}

type OrderResponse struct {
	OK          bool   `json:"ok"`
	OrderID     string `json:"orderId,omitempty"`
	OrderNumber string `json:"orderNumber,omitempty"`
}

type ContactResponse struct {
	OK bool `json:"ok"`
}
