package domain

import "time"

// OrderItem is one cart line of an incoming order. ProductID stays a
// plain string because aromabox lines carry a non-UUID sentinel id.
type OrderItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId,omitempty"`
	Name         string  `json:"name"`
	VariantID    string  `json:"variantId,omitempty"`
	VariantLabel string  `json:"variantLabel,omitempty"`
	Qty          int     `json:"qty"`
	Price        float64 `json:"price"`
}

// OrderPayload is a validated checkout submission.
type OrderPayload struct {
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	ContactMethod string      `json:"contactMethod"`
	City          string      `json:"city"`
	Street        string      `json:"street"`
	House         string      `json:"house"`
	Apartment     string      `json:"apartment,omitempty"`
	PostalCode    string      `json:"postalCode"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Shipping      float64     `json:"shipping"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	Notes         string      `json:"notes,omitempty"`
}

// CreatedOrder is what persistence returns once the order row and its
// line items are durably written.
type CreatedOrder struct {
	ID          string
	OrderNumber string
	Status      string
	CreatedAt   time.Time
}

// ContactPayload is a validated contact-form submission.
type ContactPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
