package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func Test_Product_MinPrice(t *testing.T) {
	cases := []struct {
		name    string
		product Product
		want    float64
	}{
		{"no prices", Product{}, 0},
		{"single tier", Product{Price10ml: fptr(45)}, 45},
		{"smallest wins", Product{Price2ml: fptr(12), Price10ml: fptr(45), Price100ml: fptr(250)}, 12},
		{"larger bottle cheaper", Product{Price5ml: fptr(30), Price20ml: fptr(25)}, 25},
		{"zero tier skipped", Product{Price2ml: fptr(0), Price10ml: fptr(45)}, 45},
		{"negative tier skipped", Product{Price2ml: fptr(-1), Price5ml: fptr(20)}, 20},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, tc.product.MinPrice(), tc.name)
	}
}

func Test_NormalizeAromabox(t *testing.T) {
	created := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	season := "all_seasons"
	box := Aromabox{
		ID:          uuid.New(),
		Name:        "Вечерний сет",
		Gender:      "unisex",
		SeasonGroup: &season,
		ProfileTags: []string{"Сладкий", "Вечерний"},
		CreatedAt:   created,
		Price10ml:   fptr(95),
		ImagePath:   "/images/aromabox-evening.jpg",
	}

	p := NormalizeAromabox(box)

	require.Equal(t, box.ID, p.ID)
	require.Equal(t, box.Name, p.Name)
	require.Equal(t, "unisex", p.Gender)
	require.Equal(t, created, p.DateCreate)
	require.Equal(t, box.ProfileTags, p.ProfileTags)
	require.Equal(t, 95.0, p.MinPrice())
	require.Equal(t, AromaboxBrandID, p.BrandID)
	require.True(t, IsAromaboxProduct(p))
	require.False(t, IsAromaboxProduct(Product{BrandID: uuid.New().String()}))
}

func Test_NormalizeAromabox_NilTags(t *testing.T) {
	p := NormalizeAromabox(Aromabox{ID: uuid.New()})
	require.NotNil(t, p.ProfileTags)
	require.Empty(t, p.ProfileTags)
}

func Test_ProductListQuery_LimitOffset(t *testing.T) {
	q := ProductListQuery{Page: 3, PerPage: 20}
	require.Equal(t, 20, q.Limit())
	require.Equal(t, 40, q.Offset())

	first := ProductListQuery{Page: 1, PerPage: 50}
	require.Equal(t, 0, first.Offset())
}
