package usecase

import (
	"context"
	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
)

type CreateOrderUseCase struct {
	storage port.OrderStoragePort
	mailer  port.MailerPort
	events  port.OrderEventsPort // nil when event publishing is disabled
}

func NewCreateOrderUseCase(storage port.OrderStoragePort, mailer port.MailerPort, events port.OrderEventsPort) *CreateOrderUseCase {
	return &CreateOrderUseCase{storage: storage, mailer: mailer, events: events}
}

// Execute persists the order and then notifies. Once the order and its
// line items are durably written the outcome is success: email and
// event delivery failures are logged and swallowed.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, payload domain.OrderPayload) (*domain.CreatedOrder, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "CreateOrder",
		"items_count": len(payload.Items),
		"total":       payload.Total,
	})

	created, err := uc.storage.CreateOrder(ctx, payload)
	if err != nil {
		logger.Error("Failed to persist order", err, nil)
		return nil, err
	}

	orderLogger := logger.WithFields(port.Fields{
		"order_id":     created.ID,
		"order_number": created.OrderNumber,
	})

	if err := uc.mailer.SendOrderAdminEmail(ctx, payload, *created); err != nil {
		orderLogger.Error("Failed to send admin email", err, nil)
	}
	if err := uc.mailer.SendOrderCustomerEmail(ctx, payload, *created); err != nil {
		orderLogger.Error("Failed to send customer email", err, port.Fields{"email": payload.Email})
	}

	if uc.events != nil {
		if err := uc.events.PublishOrderCreated(ctx, *created, payload); err != nil {
			orderLogger.Error("Failed to publish order created event", err, nil)
		}
	}

	orderLogger.Info("Order created", nil)
	return created, nil
}
