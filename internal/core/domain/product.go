package domain

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a perfume house. ProductsCount is only populated when the
// caller asked for counts (GET /api/brands?withCount=1).
type Brand struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ProductsCount *int      `json:"products_count,omitempty"`
}

// Product is a catalog item as stored. Price fields are per bottle
// variant and nullable: a missing tier simply is not sold.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Gender      string    `json:"gender"`
	Suits       *string   `json:"suits"`
	Benefits    *string   `json:"benefits"`
	SeasonGroup *string   `json:"season_group"`
	Occasions   *string   `json:"occasions"`
	ProfileTags []string  `json:"profile_tags"`
	DateCreate  time.Time `json:"date_create"`

	Price2ml   *float64 `json:"price_2ml"`
	Price5ml   *float64 `json:"price_5ml"`
	Price10ml  *float64 `json:"price_10ml"`
	Price20ml  *float64 `json:"price_20ml"`
	Price100ml *float64 `json:"price_100ml"`

	TopNotes   *string `json:"top_notes"`
	HeartNotes *string `json:"heart_notes"`
	BasicNotes *string `json:"basic_notes"`

	BrandID   string `json:"brand_id"`
	ImagePath string `json:"image_path"`
	Brand     *Brand `json:"brands,omitempty"`
}

// MinPrice returns the smallest positive variant price, walking tiers
// from the smallest bottle up. Zero means no tier is priced.
func (p *Product) MinPrice() float64 {
	min := 0.0
	for _, price := range []*float64{p.Price2ml, p.Price5ml, p.Price10ml, p.Price20ml, p.Price100ml} {
		if price == nil || *price <= 0 {
			continue
		}
		if min == 0 || *price < min {
			min = *price
		}
	}
	return min
}

// PaginatedProducts is the result of a filtered catalog query.
// TotalCount is the exact number of matching rows, not the page size.
type PaginatedProducts struct {
	Items      []Product
	TotalCount int
	Page       int
	PerPage    int
}

// ProductDetails is a single product plus optional recommendations
// (same brand or same gender).
type ProductDetails struct {
	Product Product
	Related []Product
}
