package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/contracts"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
	"storefront-service/internal/core/port/usecases_port"
)

// maxBodyBytes caps POST bodies; a cart submission has no business
// being megabytes large.
const maxBodyBytes = 1 << 20

type OrderHandler struct {
	createOrderUC   usecases_port.CreateOrderUseCase
	submitContactUC usecases_port.SubmitContactUseCase
	devMode         bool
}

func NewOrderHandler(createOrderUC usecases_port.CreateOrderUseCase, submitContactUC usecases_port.SubmitContactUseCase, devMode bool) *OrderHandler {
	return &OrderHandler{
		createOrderUC:   createOrderUC,
		submitContactUC: submitContactUC,
		devMode:         devMode,
	}
}

// CreateOrder handles POST /api/orders.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := contracts.ValidateOrderPayload(raw); err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			logger.Warn("Rejected order payload", port.Fields{"reason": ve.Message})
			WriteJSONError(w, http.StatusBadRequest, ve.Message)
			return
		}
		WriteJSONError(w, http.StatusBadRequest, "Invalid order payload")
		return
	}

	var payload domain.OrderPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid order payload")
		return
	}

	created, err := h.createOrderUC.Execute(r.Context(), payload)
	if err != nil {
		msg := "Failed to create order. Please try again later."
		if h.devMode {
			msg = err.Error()
		}
		WriteJSONError(w, http.StatusInternalServerError, msg)
		return
	}

	RespondWithJSON(w, http.StatusOK, OrderResponse{
		OK:          true,
		OrderID:     created.ID,
		OrderNumber: created.OrderNumber,
	})
}

// SubmitContact handles POST /api/contact.
func (h *OrderHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var payload domain.ContactPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid contact payload")
		return
	}
	payload.Message = strings.TrimSpace(payload.Message)

	normalized, err := json.Marshal(payload)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid contact payload")
		return
	}

	if err := contracts.ValidateContactPayload(normalized); err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			logger.Warn("Rejected contact payload", port.Fields{"reason": ve.Message})
			WriteJSONError(w, http.StatusBadRequest, ve.Message)
			return
		}
		WriteJSONError(w, http.StatusBadRequest, "Invalid contact payload")
		return
	}

	if err := h.submitContactUC.Execute(r.Context(), payload); err != nil {
		var de *domain.DependencyError
		if errors.As(err, &de) {
			WriteJSONError(w, http.StatusBadGateway, "Failed to send message. Please try again later.")
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	RespondWithJSON(w, http.StatusOK, ContactResponse{OK: true})
}
