package database

import (
	"context"

	"github.com/jotshin/vehicles-api/module/core/domain"
)

type VehicleRepository interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	FindByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Insert(ctx context.Context, v *domain.Vehicle) (int64, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
	UpdateTelemetry(ctx context.Context, t *domain.Telemetry) error
}
