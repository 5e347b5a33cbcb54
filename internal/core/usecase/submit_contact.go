package usecase

import (
	"context"
	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
)

type SubmitContactUseCase struct {
	mailer port.MailerPort
}

func NewSubmitContactUseCase(mailer port.MailerPort) *SubmitContactUseCase {
	return &SubmitContactUseCase{mailer: mailer}
}

// Execute forwards a contact-form message. Unlike orders there is
// nothing persisted, so a delivery failure is the failure.
func (uc *SubmitContactUseCase) Execute(ctx context.Context, payload domain.ContactPayload) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SubmitContact",
	})

	if err := uc.mailer.SendContactEmail(ctx, payload); err != nil {
		logger.Error("Failed to send contact email", err, nil)
		return &domain.DependencyError{Dependency: "email", Err: err}
	}

	logger.Info("Contact message forwarded", nil)
	return nil
}
