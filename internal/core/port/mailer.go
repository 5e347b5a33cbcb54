package port

import (
	"context"
	"storefront-service/internal/core/domain"
)

// MailerPort sends storefront notification emails.
type MailerPort interface {
	// SendOrderAdminEmail notifies the shop admin about a new order.
	SendOrderAdminEmail(ctx context.Context, order domain.OrderPayload, created domain.CreatedOrder) error

	// SendOrderCustomerEmail sends the confirmation to the customer.
	SendOrderCustomerEmail(ctx context.Context, order domain.OrderPayload, created domain.CreatedOrder) error

	// SendContactEmail forwards a contact-form message to the admin.
	SendContactEmail(ctx context.Context, contact domain.ContactPayload) error
}
