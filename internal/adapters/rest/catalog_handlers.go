package rest

import (
	"errors"
	"fmt"
	"net/http"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
	"storefront-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	findProductsUC       usecases_port.FindProductsUseCase
	getProductDetailsUC  usecases_port.GetProductDetailsUseCase
	listBrandsUC         usecases_port.ListBrandsUseCase
	listAromaboxesUC     usecases_port.ListAromaboxesUseCase
	getAromaboxDetailsUC usecases_port.GetAromaboxDetailsUseCase

	// devMode exposes store error detail in responses.
	devMode bool
}

func NewCatalogHandler(
	findProductsUC usecases_port.FindProductsUseCase,
	getProductDetailsUC usecases_port.GetProductDetailsUseCase,
	listBrandsUC usecases_port.ListBrandsUseCase,
	listAromaboxesUC usecases_port.ListAromaboxesUseCase,
	getAromaboxDetailsUC usecases_port.GetAromaboxDetailsUseCase,
	devMode bool,
) *CatalogHandler {
	return &CatalogHandler{
		findProductsUC:       findProductsUC,
		getProductDetailsUC:  getProductDetailsUC,
		listBrandsUC:         listBrandsUC,
		listAromaboxesUC:     listAromaboxesUC,
		getAromaboxDetailsUC: getAromaboxDetailsUC,
		devMode:              devMode,
	}
}

// storeErrorMessage hides backend detail from callers unless the
// service runs in development mode.
func (h *CatalogHandler) storeErrorMessage(generic string, err error) string {
	if h.devMode {
		return fmt.Sprintf("%s: %v", generic, err)
	}
	return generic
}

// FindProducts handles GET /api/products.
func (h *CatalogHandler) FindProducts(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	query, err := ParseProductListQuery(r.URL.Query())
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			logger.Warn("Rejected products query", port.Fields{"reason": ve.Error()})
			WriteJSONError(w, http.StatusBadRequest, ve.Message)
			return
		}
		WriteJSONError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.findProductsUC.Execute(r.Context(), query)
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, h.storeErrorMessage("Failed to fetch products", err))
		return
	}

	RespondWithJSON(w, http.StatusOK, ProductsListResponse{
		Items:   result.Items,
		Count:   result.TotalCount,
		Page:    result.Page,
		PerPage: result.PerPage,
	})
}

// GetProductDetails handles GET /api/products/{productID}.
func (h *CatalogHandler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	idParam := chi.URLParam(r, "productID")
	productID, err := uuid.Parse(idParam)
	if err != nil || len(idParam) != 36 {
		logger.Warn("Invalid product ID format", port.Fields{"product_id": idParam})
		WriteJSONError(w, http.StatusBadRequest, "Invalid product ID format. Expected UUID.")
		return
	}

	withRelated := parseBoolParam(r.URL.Query().Get("withRelated"))
	relatedLimit := parseRelatedLimit(r.URL.Query().Get("relatedLimit"))

	details, err := h.getProductDetailsUC.Execute(r.Context(), productID, withRelated, relatedLimit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Product not found")
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, h.storeErrorMessage("Failed to fetch product", err))
		return
	}

	// Product details change rarely; let clients and CDNs cache them.
	w.Header().Set("Cache-Control", "public, max-age=600, s-maxage=600")
	w.Header().Set("ETag", fmt.Sprintf(`"product-%s-%d"`, productID, details.Product.DateCreate.Unix()))

	RespondWithJSON(w, http.StatusOK, ProductDetailResponse{
		Product:         details.Product,
		RelatedProducts: details.Related,
	})
}

// ListBrands handles GET /api/brands.
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	withCount := parseBoolParam(r.URL.Query().Get("withCount"))

	brands, err := h.listBrandsUC.Execute(r.Context(), withCount)
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, h.storeErrorMessage("Failed to fetch brands", err))
		return
	}
	if brands == nil {
		brands = []domain.Brand{}
	}

	w.Header().Set("Cache-Control", "public, max-age=300, s-maxage=300")
	RespondWithJSON(w, http.StatusOK, brands)
}

// ListAromaboxes handles GET /api/aromaboxes.
func (h *CatalogHandler) ListAromaboxes(w http.ResponseWriter, r *http.Request) {
	boxes, err := h.listAromaboxesUC.Execute(r.Context())
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, h.storeErrorMessage("Failed to fetch aromaboxes", err))
		return
	}
	if boxes == nil {
		boxes = []domain.Aromabox{}
	}

	w.Header().Set("Cache-Control", "public, max-age=300, s-maxage=300")
	RespondWithJSON(w, http.StatusOK, boxes)
}

// GetAromaboxDetails handles GET /api/aromaboxes/{aromaboxID}.
func (h *CatalogHandler) GetAromaboxDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	idParam := chi.URLParam(r, "aromaboxID")
	boxID, err := uuid.Parse(idParam)
	if err != nil || len(idParam) != 36 {
		logger.Warn("Invalid aromabox ID format", port.Fields{"aromabox_id": idParam})
		WriteJSONError(w, http.StatusBadRequest, "Invalid aromabox ID format. Expected UUID.")
		return
	}

	withRelated := parseBoolParam(r.URL.Query().Get("withRelated"))
	relatedLimit := parseRelatedLimit(r.URL.Query().Get("relatedLimit"))

	details, err := h.getAromaboxDetailsUC.Execute(r.Context(), boxID, withRelated, relatedLimit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Aromabox not found")
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, h.storeErrorMessage("Failed to fetch aromabox", err))
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=600, s-maxage=600")
	w.Header().Set("ETag", fmt.Sprintf(`"aromabox-%s-%d"`, boxID, details.Aromabox.CreatedAt.Unix()))

	RespondWithJSON(w, http.StatusOK, AromaboxDetailResponse{
		Aromabox:          details.Aromabox,
		RelatedAromaboxes: details.Related,
	})
}
