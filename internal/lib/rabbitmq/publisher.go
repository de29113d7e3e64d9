package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/pis-contract/internal/models"
)

// Channel часть *amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// PublishMessage сериализует message в JSON и публикует его как persistent-сообщение.
func PublishMessage(ch Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// EventPublisher публикует доменные события платежей в обменник.
type EventPublisher struct {
	ch       Channel
	exchange string
}

// NewEventPublisher создаёт EventPublisher поверх открытого канала.
func NewEventPublisher(ch Channel, exchange string) *EventPublisher {
	return &EventPublisher{ch: ch, exchange: exchange}
}

// PublishPaymentInitiated публикует событие об инициации платежа.
func (p *EventPublisher) PublishPaymentInitiated(ctx context.Context, event models.PaymentInitiatedEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("rabbitmq.PublishPaymentInitiated: %w", err)
	}
	return PublishMessage(p.ch, p.exchange, RoutingKeyPaymentInitiated, event)
}
