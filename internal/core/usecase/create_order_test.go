package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront-service/internal/core/domain"

	"github.com/stretchr/testify/require"
)

type fakeOrderStorage struct {
	created *domain.CreatedOrder
	err     error
	calls   int
}

func (f *fakeOrderStorage) CreateOrder(context.Context, domain.OrderPayload) (*domain.CreatedOrder, error) {
	f.calls++
	return f.created, f.err
}

type fakeMailer struct {
	adminErr    error
	customerErr error
	contactErr  error

	adminSent    int
	customerSent int
	contactSent  int
}

func (f *fakeMailer) SendOrderAdminEmail(context.Context, domain.OrderPayload, domain.CreatedOrder) error {
	f.adminSent++
	return f.adminErr
}

func (f *fakeMailer) SendOrderCustomerEmail(context.Context, domain.OrderPayload, domain.CreatedOrder) error {
	f.customerSent++
	return f.customerErr
}

func (f *fakeMailer) SendContactEmail(context.Context, domain.ContactPayload) error {
	f.contactSent++
	return f.contactErr
}

type fakeOrderEvents struct {
	err       error
	published int
}

func (f *fakeOrderEvents) PublishOrderCreated(context.Context, domain.CreatedOrder, domain.OrderPayload) error {
	f.published++
	return f.err
}

func (f *fakeOrderEvents) Close() error { return nil }

func orderPayload() domain.OrderPayload {
	return domain.OrderPayload{
		FirstName: "Anna",
		LastName:  "Ivanova",
		Phone:     "+375291234567",
		Email:     "anna@example.com",
		Items: []domain.OrderItem{
			{ID: "p1-10ml", Name: "Oud Wood", Qty: 1, Price: 60},
		},
		Subtotal: 60,
		Total:    60,
	}
}

func createdOrder() *domain.CreatedOrder {
	return &domain.CreatedOrder{
		ID:          "0d0f7f0e-9f3e-4a1c-8cbb-000000000001",
		OrderNumber: "ORD-2024-000123",
		Status:      "new",
		CreatedAt:   time.Now(),
	}
}

func Test_CreateOrder_Success(t *testing.T) {
	storage := &fakeOrderStorage{created: createdOrder()}
	mailer := &fakeMailer{}
	events := &fakeOrderEvents{}
	uc := NewCreateOrderUseCase(storage, mailer, events)

	created, err := uc.Execute(context.Background(), orderPayload())
	require.NoError(t, err)
	require.Equal(t, "ORD-2024-000123", created.OrderNumber)
	require.Equal(t, 1, mailer.adminSent)
	require.Equal(t, 1, mailer.customerSent)
	require.Equal(t, 1, events.published)
}

func Test_CreateOrder_PersistenceFailureStopsEverything(t *testing.T) {
	storage := &fakeOrderStorage{err: fmt.Errorf("pg: connection refused")}
	mailer := &fakeMailer{}
	events := &fakeOrderEvents{}
	uc := NewCreateOrderUseCase(storage, mailer, events)

	_, err := uc.Execute(context.Background(), orderPayload())
	require.Error(t, err)
	require.Zero(t, mailer.adminSent)
	require.Zero(t, mailer.customerSent)
	require.Zero(t, events.published)
}

func Test_CreateOrder_EmailFailuresAreSwallowed(t *testing.T) {
	storage := &fakeOrderStorage{created: createdOrder()}
	mailer := &fakeMailer{
		adminErr:    fmt.Errorf("smtp: relay refused"),
		customerErr: fmt.Errorf("smtp: mailbox full"),
	}
	events := &fakeOrderEvents{err: fmt.Errorf("amqp: channel closed")}
	uc := NewCreateOrderUseCase(storage, mailer, events)

	// once the order is durably written, notification failures do not
	// change the outcome
	created, err := uc.Execute(context.Background(), orderPayload())
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, 1, mailer.adminSent)
	require.Equal(t, 1, mailer.customerSent)
}

func Test_CreateOrder_NilEventsPort(t *testing.T) {
	storage := &fakeOrderStorage{created: createdOrder()}
	uc := NewCreateOrderUseCase(storage, &fakeMailer{}, nil)

	_, err := uc.Execute(context.Background(), orderPayload())
	require.NoError(t, err)
}

func Test_SubmitContact(t *testing.T) {
	mailer := &fakeMailer{}
	uc := NewSubmitContactUseCase(mailer)

	payload := domain.ContactPayload{Name: "Anna", Phone: "+375291234567", Message: "Хочу подобрать аромат"}
	require.NoError(t, uc.Execute(context.Background(), payload))
	require.Equal(t, 1, mailer.contactSent)

	mailer.contactErr = fmt.Errorf("smtp: relay refused")
	err := uc.Execute(context.Background(), payload)

	var de *domain.DependencyError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "email", de.Dependency)
}
