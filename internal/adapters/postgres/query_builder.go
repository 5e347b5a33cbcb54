package postgres

import (
	"fmt"
	"strings"

	"storefront-service/internal/constants"
	"storefront-service/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: make([]string, 0),
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// build returns the WHERE clause (empty string when unfiltered) and the
// positional args collected so far.
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyProductFilters translates a validated catalog query into SQL
// fragments. Every value reaching this point already passed the REST
// layer's vocabulary checks, so the conditions only have to express the
// filter semantics, not defend against input.
func applyProductFilters(query domain.ProductListQuery) (string, []interface{}) {
	qb := newQueryBuilder()

	if len(query.Genders) > 0 {
		qb.addCondition("%s = ANY($%d)", "p.gender", query.Genders)
	}

	if len(query.BrandIDs) > 0 {
		qb.addCondition("%s = ANY($%d)", "p.brand_id", query.BrandIDs)
	}

	if query.Season != "" {
		qb.addCondition("%s = $%d", "p.season_group", query.Season)
	}

	// && is array overlap, @> is array containment.
	if len(query.ProfileAny) > 0 {
		qb.addCondition("%s && $%d", "p.profile_tags", query.ProfileAny)
	}
	if len(query.ProfileAll) > 0 {
		qb.addCondition("%s @> $%d", "p.profile_tags", query.ProfileAll)
	}

	if query.Search != "" {
		qb.addCondition("%s ILIKE $%d", "p.name", "%"+query.Search+"%")
	}

	return qb.build()
}

// orderClause maps a validated sort option to SQL. Price sorts use the
// 10ml tier; null placement mirrors the storefront's display rules.
func orderClause(sort string) string {
	switch sort {
	case constants.SortPriceAsc:
		return "ORDER BY p.price_10ml ASC NULLS FIRST"
	case constants.SortPriceDesc:
		return "ORDER BY p.price_10ml DESC NULLS LAST"
	default:
		return "ORDER BY p.date_create DESC NULLS LAST"
	}
}
