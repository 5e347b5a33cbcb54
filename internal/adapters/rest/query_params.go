package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"storefront-service/internal/constants"
	"storefront-service/internal/core/domain"

	"github.com/google/uuid"
)

// splitCommaList splits a comma-separated parameter into trimmed,
// non-empty entries.
func splitCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// ParseProductListQuery validates raw query parameters into a bounded
// catalog query.
//
// Multi-value filters are lenient: unknown entries are dropped so a
// stale client filter cannot break the whole request. Single-value
// fields (season, sort) and a gender list with no valid entry at all
// reject the request instead.
func ParseProductListQuery(values url.Values) (domain.ProductListQuery, error) {
	query := domain.ProductListQuery{
		Sort:    constants.SortNewest,
		Page:    constants.MinPage,
		PerPage: constants.DefaultPerPage,
	}

	gendersRaw := splitCommaList(values.Get("genders"))
	genders := constants.FilterValid(gendersRaw, constants.IsValidGender)
	if len(gendersRaw) > 0 && len(genders) == 0 {
		return query, domain.NewValidationError("genders",
			fmt.Sprintf("invalid gender values, allowed: %s", strings.Join(constants.Genders, ", ")))
	}
	query.Genders = genders

	for _, raw := range splitCommaList(values.Get("brands")) {
		// Only canonical 36-char UUIDs pass; malformed ids are dropped
		// silently rather than failing the request.
		if len(raw) != 36 {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		query.BrandIDs = append(query.BrandIDs, id)
	}

	if season := values.Get("season"); season != "" {
		if !constants.IsValidSeason(season) {
			return query, domain.NewValidationError("season",
				fmt.Sprintf("invalid season, allowed: %s", strings.Join(constants.Seasons, ", ")))
		}
		query.Season = season
	}

	query.ProfileAny = constants.FilterValid(splitCommaList(values.Get("profileAny")), constants.IsValidProfileTag)
	query.ProfileAll = constants.FilterValid(splitCommaList(values.Get("profileAll")), constants.IsValidProfileTag)

	if sort := values.Get("sort"); sort != "" {
		if !constants.IsValidSort(sort) {
			return query, domain.NewValidationError("sort",
				fmt.Sprintf("invalid sort option, allowed: %s", strings.Join(constants.SortOptions, ", ")))
		}
		query.Sort = sort
	}

	query.Page = clampIntParam(values.Get("page"), constants.MinPage, constants.MinPage, constants.MaxPage)
	query.PerPage = clampIntParam(values.Get("perPage"), constants.DefaultPerPage, constants.MinPerPage, constants.MaxPerPage)

	// Length limits count characters, not bytes, so multi-byte input is
	// never cut mid-rune.
	if search := strings.TrimSpace(values.Get("search")); utf8.RuneCountInString(search) >= constants.SearchMinLength {
		if utf8.RuneCountInString(search) > constants.SearchMaxLength {
			search = string([]rune(search)[:constants.SearchMaxLength])
		}
		query.Search = search
	}

	return query, nil
}

// clampIntParam parses an integer parameter, falling back to def on
// non-numeric input and clamping the result into [min, max].
func clampIntParam(raw string, def, min, max int) int {
	value := def
	if raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			value = parsed
		}
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return value
}

// parseBoolParam accepts "true" and "1" as true, anything else false.
func parseBoolParam(raw string) bool {
	return raw == "true" || raw == "1"
}

// parseRelatedLimit clamps the relatedLimit parameter for detail
// endpoints.
func parseRelatedLimit(raw string) int {
	return clampIntParam(raw, constants.DefaultRelatedLimit, constants.MinRelatedLimit, constants.MaxRelatedLimit)
}
