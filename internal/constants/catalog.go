package constants

// Fixed catalog vocabularies. Invalid values in multi-value filters are
// dropped silently; invalid single-value fields reject the request.
var (
	Genders = []string{"men", "women", "unisex"}

	Seasons = []string{"fall_winter", "spring_summer", "all_seasons"}

	SortOptions = []string{SortNewest, SortPriceAsc, SortPriceDesc}

	// ProfileTags is the fixed scent-attribute vocabulary. The labels are
	// catalog data, shared verbatim with the storefront UI.
	ProfileTags = []string{
		"Свежий",
		"Сладкий",
		"Цитрусовый",
		"Древесный",
		"Пряный",
		"Теплый",
		"Пудровый",
		"Гурманский",
		"Табачный",
		"Кофейный",
		"Удовый",
		"Восточный",
		"Фруктовый",
		"Кожаный",
		"Дымный",
		"Мускусный",
		"Ванильный",
		"Универсальный",
		"Чайный",
		"Вечерний",
		"Повседневный",
		"Минеральный",
		"Молочный",
	}
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// Pagination bounds. Out-of-range numeric input is clamped, non-numeric
// input falls back to the defaults.
const (
	MinPage        = 1
	MaxPage        = 1000
	MinPerPage     = 1
	MaxPerPage     = 100
	DefaultPerPage = 20
)

// Search-as-you-type limits, in characters.
const (
	SearchMinLength = 2
	SearchMaxLength = 100
)

// Related-products limits for detail endpoints.
const (
	MinRelatedLimit     = 1
	MaxRelatedLimit     = 20
	DefaultRelatedLimit = 4
)

// BottleSize is a purchasable volume tier of a product.
type BottleSize struct {
	ID string
	Ml int
}

var BottleSizes = []BottleSize{
	{ID: "2ml", Ml: 2},
	{ID: "5ml", Ml: 5},
	{ID: "10ml", Ml: 10},
	{ID: "20ml", Ml: 20},
	{ID: "100ml", Ml: 100},
}

// IsValidGender reports whether value belongs to the gender vocabulary.
func IsValidGender(value string) bool { return contains(Genders, value) }

// IsValidSeason reports whether value belongs to the season vocabulary.
func IsValidSeason(value string) bool { return contains(Seasons, value) }

// IsValidSort reports whether value is a supported sort option.
func IsValidSort(value string) bool { return contains(SortOptions, value) }

// IsValidProfileTag reports whether value belongs to the tag vocabulary.
func IsValidProfileTag(value string) bool { return contains(ProfileTags, value) }

// FilterValid keeps only the values accepted by the validator,
// preserving order.
func FilterValid(values []string, valid func(string) bool) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if valid(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
