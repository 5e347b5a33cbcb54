package domain

import (
	"time"

	"github.com/google/uuid"
)

// AromaboxBrandID is the sentinel brand id used when an aromabox is
// normalized into a Product-shaped value for catalog reuse.
const AromaboxBrandID = "aromabox"

// Aromabox is a curated perfume set (the secondary catalog category).
type Aromabox struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Gender      string    `json:"gender"`
	Suits       *string   `json:"suits"`
	Benefits    *string   `json:"benefits"`
	SeasonGroup *string   `json:"season_group"`
	ProfileTags []string  `json:"profile_tags"`
	CreatedAt   time.Time `json:"created_at"`

	Price5ml  *float64 `json:"price_5ml"`
	Price10ml *float64 `json:"price_10ml"`
	Price20ml *float64 `json:"price_20ml"`

	ImagePath string `json:"image_path"`
}

// AromaboxDetails is a single aromabox plus optional related sets.
type AromaboxDetails struct {
	Aromabox Aromabox
	Related  []Aromabox
}

// NormalizeAromabox converts an aromabox to the Product shape so the
// catalog list machinery can handle both categories uniformly.
func NormalizeAromabox(box Aromabox) Product {
	tags := box.ProfileTags
	if tags == nil {
		tags = []string{}
	}
	return Product{
		ID:          box.ID,
		Name:        box.Name,
		Gender:      box.Gender,
		Suits:       box.Suits,
		Benefits:    box.Benefits,
		SeasonGroup: box.SeasonGroup,
		ProfileTags: tags,
		DateCreate:  box.CreatedAt,
		Price5ml:    box.Price5ml,
		Price10ml:   box.Price10ml,
		Price20ml:   box.Price20ml,
		BrandID:     AromaboxBrandID,
		ImagePath:   box.ImagePath,
	}
}

// IsAromaboxProduct reports whether a normalized product originated
// from the aromabox category.
func IsAromaboxProduct(p Product) bool {
	return p.BrandID == AromaboxBrandID
}
