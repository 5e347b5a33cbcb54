package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubFindProducts struct {
	result *domain.PaginatedProducts
	err    error
	query  domain.ProductListQuery
}

func (s *stubFindProducts) Execute(_ context.Context, query domain.ProductListQuery) (*domain.PaginatedProducts, error) {
	s.query = query
	return s.result, s.err
}

type stubGetProductDetails struct {
	result *domain.ProductDetails
	err    error
}

func (s *stubGetProductDetails) Execute(context.Context, uuid.UUID, bool, int) (*domain.ProductDetails, error) {
	return s.result, s.err
}

type stubListBrands struct {
	result []domain.Brand
	err    error
}

func (s *stubListBrands) Execute(context.Context, bool) ([]domain.Brand, error) {
	return s.result, s.err
}

type stubListAromaboxes struct {
	result []domain.Aromabox
	err    error
}

func (s *stubListAromaboxes) Execute(context.Context) ([]domain.Aromabox, error) {
	return s.result, s.err
}

type stubGetAromaboxDetails struct {
	result *domain.AromaboxDetails
	err    error
}

func (s *stubGetAromaboxDetails) Execute(context.Context, uuid.UUID, bool, int) (*domain.AromaboxDetails, error) {
	return s.result, s.err
}

func newTestCatalogHandler(
	find *stubFindProducts,
	details *stubGetProductDetails,
	brands *stubListBrands,
	boxes *stubListAromaboxes,
	boxDetails *stubGetAromaboxDetails,
) *CatalogHandler {
	if find == nil {
		find = &stubFindProducts{result: &domain.PaginatedProducts{}}
	}
	if details == nil {
		details = &stubGetProductDetails{result: &domain.ProductDetails{}}
	}
	if brands == nil {
		brands = &stubListBrands{}
	}
	if boxes == nil {
		boxes = &stubListAromaboxes{}
	}
	if boxDetails == nil {
		boxDetails = &stubGetAromaboxDetails{result: &domain.AromaboxDetails{}}
	}
	return NewCatalogHandler(find, details, brands, boxes, boxDetails, false)
}

func Test_FindProducts_OK(t *testing.T) {
	price := 120.0
	find := &stubFindProducts{result: &domain.PaginatedProducts{
		Items:      []domain.Product{{ID: uuid.New(), Name: "Oud Wood", Price10ml: &price}},
		TotalCount: 45,
		Page:       1,
		PerPage:    20,
	}}
	handler := newTestCatalogHandler(find, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products?genders=women&sort=price_asc", nil)
	rec := httptest.NewRecorder()
	handler.FindProducts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"women"}, find.query.Genders)
	require.Equal(t, "price_asc", find.query.Sort)

	var body ProductsListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	require.Equal(t, 45, body.Count)
	require.Equal(t, 20, body.PerPage)
}

func Test_FindProducts_InvalidGenders(t *testing.T) {
	handler := newTestCatalogHandler(nil, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products?genders=aliens", nil)
	rec := httptest.NewRecorder()
	handler.FindProducts(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["error"], "gender")
}

func Test_FindProducts_StoreError_HidesDetail(t *testing.T) {
	find := &stubFindProducts{err: fmt.Errorf("pg: connection refused")}
	handler := newTestCatalogHandler(find, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	handler.FindProducts(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection refused")
}

func detailRequest(t *testing.T, handler *CatalogHandler, id string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.Get("/api/products/{productID}", handler.GetProductDetails)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func Test_GetProductDetails_MalformedID(t *testing.T) {
	handler := newTestCatalogHandler(nil, nil, nil, nil, nil)

	for _, id := range []string{"123", "not-a-uuid", "000000000000000000000000000000000000"} {
		rec := detailRequest(t, handler, id)
		require.Equal(t, http.StatusBadRequest, rec.Code, "id=%q", id)
	}
}

func Test_GetProductDetails_NotFound(t *testing.T) {
	details := &stubGetProductDetails{err: domain.ErrNotFound}
	handler := newTestCatalogHandler(nil, details, nil, nil, nil)

	rec := detailRequest(t, handler, uuid.New().String())
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_GetProductDetails_CachingHeaders(t *testing.T) {
	productID := uuid.New()
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	details := &stubGetProductDetails{result: &domain.ProductDetails{
		Product: domain.Product{ID: productID, Name: "Tobacco Vanille", DateCreate: created},
	}}
	handler := newTestCatalogHandler(nil, details, nil, nil, nil)

	rec := detailRequest(t, handler, productID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "public, max-age=600, s-maxage=600", rec.Header().Get("Cache-Control"))
	require.Equal(t, fmt.Sprintf(`"product-%s-%d"`, productID, created.Unix()), rec.Header().Get("ETag"))
}

func Test_ListBrands_EmptyIsArray(t *testing.T) {
	handler := newTestCatalogHandler(nil, nil, &stubListBrands{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	rec := httptest.NewRecorder()
	handler.ListBrands(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", rec.Body.String())
	require.Equal(t, "public, max-age=300, s-maxage=300", rec.Header().Get("Cache-Control"))
}

func Test_ListAromaboxes_OK(t *testing.T) {
	boxes := &stubListAromaboxes{result: []domain.Aromabox{{ID: uuid.New(), Name: "Вечерний сет"}}}
	handler := newTestCatalogHandler(nil, nil, nil, boxes, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/aromaboxes", nil)
	rec := httptest.NewRecorder()
	handler.ListAromaboxes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []domain.Aromabox
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
}
