package domain

import "github.com/google/uuid"

// ProductListQuery is a validated, bounded catalog query. Instances are
// produced by the REST layer from untrusted request parameters; by the
// time one reaches a repository every field is within its vocabulary
// and pagination is clamped.
type ProductListQuery struct {
	Genders    []string
	BrandIDs   []uuid.UUID
	Season     string
	ProfileAny []string
	ProfileAll []string
	Search     string
	Sort       string
	Page       int
	PerPage    int
}

// Limit is the page size for the SQL query.
func (q ProductListQuery) Limit() int {
	return q.PerPage
}

// Offset is the zero-based row offset of the requested page.
func (q ProductListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}
