package smtp

import (
	"context"
	"fmt"

	"storefront-service/internal/core/domain"
	core_port "storefront-service/internal/core/port"

	"github.com/wneessen/go-mail"
)

// MailerAdapter sends transactional mail over SMTP.
type MailerAdapter struct {
	client     *mail.Client
	from       string
	adminEmail string
	logger     core_port.LoggerPort
}

type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AdminEmail string
}

func NewMailerAdapter(cfg Config, logger core_port.LoggerPort) (*MailerAdapter, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSLPort(false))
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &MailerAdapter{
		client:     client,
		from:       cfg.From,
		adminEmail: cfg.AdminEmail,
		logger:     logger,
	}, nil
}

func (m *MailerAdapter) SendOrderAdminEmail(ctx context.Context, order domain.OrderPayload, created domain.CreatedOrder) error {
	body, err := renderOrderAdminBody(created, order)
	if err != nil {
		return fmt.Errorf("failed to render admin order email: %w", err)
	}
	subject := fmt.Sprintf("Новый заказ №%s", created.OrderNumber)
	return m.send(ctx, m.adminEmail, subject, body)
}

func (m *MailerAdapter) SendOrderCustomerEmail(ctx context.Context, order domain.OrderPayload, created domain.CreatedOrder) error {
	body, err := renderOrderCustomerBody(created, order)
	if err != nil {
		return fmt.Errorf("failed to render customer order email: %w", err)
	}
	subject := fmt.Sprintf("Ваш заказ №%s принят", created.OrderNumber)
	return m.send(ctx, order.Email, subject, body)
}

func (m *MailerAdapter) SendContactEmail(ctx context.Context, payload domain.ContactPayload) error {
	body, err := renderContactBody(payload)
	if err != nil {
		return fmt.Errorf("failed to render contact email: %w", err)
	}
	return m.send(ctx, m.adminEmail, "Новое сообщение с сайта", body)
}

func (m *MailerAdapter) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	m.logger.Debug("Email sent", core_port.Fields{"to": to, "subject": subject})
	return nil
}
