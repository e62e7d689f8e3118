package publisher

import (
	"context"

	"github.com/jotshin/vehicles-api/module/core/domain"
)

type EventPublisher interface {
	PublishEvent(ctx context.Context, event *domain.VehicleEvent) error
}
