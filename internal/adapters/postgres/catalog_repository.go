package postgres

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository implements CatalogStoragePort over PostgreSQL.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) (*CatalogRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &CatalogRepository{pool: pool}, nil
}

const productColumns = `
	p.id, p.name, p.gender, p.suits, p.benefits, p.season_group, p.occasions,
	COALESCE(p.profile_tags, '{}'), p.date_create,
	p.price_2ml, p.price_5ml, p.price_10ml, p.price_20ml, p.price_100ml,
	p.top_notes, p.heart_notes, p.basic_notes,
	p.brand_id, COALESCE(p.image_path, ''),
	b.id, b.name`

type productRowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row productRowScanner) (domain.Product, error) {
	var (
		p         domain.Product
		productID uuid.UUID
		brandID   uuid.UUID
		joinedID  *uuid.UUID
		joinedNm  *string
	)

	err := row.Scan(
		&productID, &p.Name, &p.Gender, &p.Suits, &p.Benefits, &p.SeasonGroup, &p.Occasions,
		&p.ProfileTags, &p.DateCreate,
		&p.Price2ml, &p.Price5ml, &p.Price10ml, &p.Price20ml, &p.Price100ml,
		&p.TopNotes, &p.HeartNotes, &p.BasicNotes,
		&brandID, &p.ImagePath,
		&joinedID, &joinedNm,
	)
	if err != nil {
		return domain.Product{}, err
	}

	p.ID = productID
	p.BrandID = brandID.String()
	if joinedID != nil && joinedNm != nil {
		p.Brand = &domain.Brand{ID: *joinedID, Name: *joinedNm}
	}
	return p, nil
}

// FindProducts runs the filtered page query together with an exact
// count over the same WHERE clause, so callers can compute remaining
// pages without a second round trip.
func (r *CatalogRepository) FindProducts(ctx context.Context, query domain.ProductListQuery) (*domain.PaginatedProducts, error) {
	whereClause, args := applyProductFilters(query)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products p %s`, whereClause)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	pageArgs := append(args, query.Limit(), query.Offset())
	pageQuery := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, orderClause(query.Sort), len(args)+1, len(args)+2,
	)

	rows, err := r.pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Product, 0, query.PerPage)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}

	return &domain.PaginatedProducts{
		Items:      items,
		TotalCount: total,
		Page:       query.Page,
		PerPage:    query.PerPage,
	}, nil
}

func (r *CatalogRepository) GetProductByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE p.id = $1`, productColumns)

	p, err := scanProduct(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	return &p, nil
}

// FindRelatedProducts picks recommendations sharing the brand or the
// gender, newest first.
func (r *CatalogRepository) FindRelatedProducts(ctx context.Context, product domain.Product, limit int) ([]domain.Product, error) {
	brandID, err := uuid.Parse(product.BrandID)
	if err != nil {
		// Normalized non-catalog products carry a sentinel brand id;
		// fall back to gender-only matching.
		brandID = uuid.Nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE p.id <> $1 AND (p.brand_id = $2 OR p.gender = $3)
		ORDER BY p.date_create DESC NULLS LAST
		LIMIT $4`, productColumns)

	rows, err := r.pool.Query(ctx, query, product.ID, brandID, product.Gender, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query related products: %w", err)
	}
	defer rows.Close()

	var related []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan related product: %w", err)
		}
		related = append(related, p)
	}
	return related, rows.Err()
}

func (r *CatalogRepository) ListBrands(ctx context.Context, withCount bool) ([]domain.Brand, error) {
	if !withCount {
		rows, err := r.pool.Query(ctx, `SELECT id, name FROM brands ORDER BY name ASC`)
		if err != nil {
			return nil, fmt.Errorf("failed to query brands: %w", err)
		}
		defer rows.Close()

		var brands []domain.Brand
		for rows.Next() {
			var b domain.Brand
			if err := rows.Scan(&b.ID, &b.Name); err != nil {
				return nil, fmt.Errorf("failed to scan brand row: %w", err)
			}
			brands = append(brands, b)
		}
		return brands, rows.Err()
	}

	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.name, COUNT(p.id)
		FROM brands b
		LEFT JOIN products p ON p.brand_id = b.id
		GROUP BY b.id, b.name
		ORDER BY b.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query brands with counts: %w", err)
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var (
			b     domain.Brand
			count int
		)
		if err := rows.Scan(&b.ID, &b.Name, &count); err != nil {
			return nil, fmt.Errorf("failed to scan brand row: %w", err)
		}
		b.ProductsCount = &count
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

const aromaboxColumns = `
	id, name, gender, suits, benefits, season_group,
	COALESCE(profile_tags, '{}'), created_at,
	price_5ml, price_10ml, price_20ml, COALESCE(image_path, '')`

func scanAromabox(row productRowScanner) (domain.Aromabox, error) {
	var box domain.Aromabox
	err := row.Scan(
		&box.ID, &box.Name, &box.Gender, &box.Suits, &box.Benefits, &box.SeasonGroup,
		&box.ProfileTags, &box.CreatedAt,
		&box.Price5ml, &box.Price10ml, &box.Price20ml, &box.ImagePath,
	)
	return box, err
}

func (r *CatalogRepository) ListAromaboxes(ctx context.Context) ([]domain.Aromabox, error) {
	query := fmt.Sprintf(`SELECT %s FROM perfume_sets ORDER BY name ASC`, aromaboxColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query aromaboxes: %w", err)
	}
	defer rows.Close()

	var boxes []domain.Aromabox
	for rows.Next() {
		box, err := scanAromabox(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan aromabox row: %w", err)
		}
		boxes = append(boxes, box)
	}
	return boxes, rows.Err()
}

func (r *CatalogRepository) GetAromaboxByID(ctx context.Context, boxID uuid.UUID) (*domain.Aromabox, error) {
	query := fmt.Sprintf(`SELECT %s FROM perfume_sets WHERE id = $1`, aromaboxColumns)

	box, err := scanAromabox(r.pool.QueryRow(ctx, query, boxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get aromabox %s: %w", boxID, err)
	}
	return &box, nil
}

func (r *CatalogRepository) FindRelatedAromaboxes(ctx context.Context, box domain.Aromabox, limit int) ([]domain.Aromabox, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM perfume_sets
		WHERE id <> $1 AND gender = $2
		ORDER BY created_at DESC
		LIMIT $3`, aromaboxColumns)

	rows, err := r.pool.Query(ctx, query, box.ID, box.Gender, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query related aromaboxes: %w", err)
	}
	defer rows.Close()

	var related []domain.Aromabox
	for rows.Next() {
		item, err := scanAromabox(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan related aromabox: %w", err)
		}
		related = append(related, item)
	}
	return related, rows.Err()
}
