package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jotshin/vehicles-api/module/core/domain"
	"github.com/jotshin/vehicles-api/module/core/internal/repository/publisher"
)

var _ publisher.EventPublisher = (*VehicleEventPublisher)(nil)

const (
	exchangeName = "vehicles.events"
	queueName    = "vehicle_lifecycle"
)

type VehicleEventPublisher struct {
	ch *amqp.Channel
}

func NewVehicleEventPublisher(conn *amqp.Connection) (*VehicleEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &VehicleEventPublisher{ch: ch}, nil
}

func (p *VehicleEventPublisher) PublishEvent(ctx context.Context, event *domain.VehicleEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
