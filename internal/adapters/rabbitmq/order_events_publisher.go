package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	core_port "storefront-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const orderCreatedRoutingKey = "orders.created"

// OrderCreatedEventDTO is the wire shape published to the exchange.
type OrderCreatedEventDTO struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	Email       string    `json:"email"`
	ItemsCount  int       `json:"itemsCount"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OrderEventsPublisherAdapter publishes order lifecycle events to a
// topic exchange. The publisher is optional wiring: when RabbitMQ is
// disabled the composition root simply leaves the port nil.
type OrderEventsPublisherAdapter struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	logger     core_port.LoggerPort
}

func NewOrderEventsPublisherAdapter(url, exchange string, logger core_port.LoggerPort) (*OrderEventsPublisherAdapter, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchange, err)
	}

	return &OrderEventsPublisherAdapter{
		connection: conn,
		channel:    ch,
		exchange:   exchange,
		logger:     logger,
	}, nil
}

func (a *OrderEventsPublisherAdapter) PublishOrderCreated(ctx context.Context, order domain.CreatedOrder, payload domain.OrderPayload) error {
	if a.channel == nil || a.connection == nil || a.connection.IsClosed() {
		return fmt.Errorf("order events publisher: not connected")
	}

	dto := OrderCreatedEventDTO{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Email:       payload.Email,
		ItemsCount:  len(payload.Items),
		Total:       payload.Total,
		CreatedAt:   order.CreatedAt,
	}

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("failed to marshal order created event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    "OrderCreatedEvent",
			"event-version": "1.0.0",
		},
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = a.channel.PublishWithContext(
		publishCtx,
		a.exchange,
		orderCreatedRoutingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish order created event: %w", err)
	}

	a.logger.Debug("Published order created event", core_port.Fields{
		"order_number": order.OrderNumber,
		"routing_key":  orderCreatedRoutingKey,
	})
	return nil
}

func (a *OrderEventsPublisherAdapter) Close() error {
	var firstErr error
	if a.channel != nil {
		if err := a.channel.Close(); err != nil {
			firstErr = err
		}
		a.channel = nil
	}
	if a.connection != nil {
		if err := a.connection.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.connection = nil
	}
	return firstErr
}
