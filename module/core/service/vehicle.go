package service

import (
	"context"
	"log"
	"time"

	"github.com/jotshin/vehicles-api/module/core/domain"
	"github.com/jotshin/vehicles-api/module/core/internal/repository/database"
	"github.com/jotshin/vehicles-api/module/core/internal/repository/publisher"
)

type pricingClient interface {
	PriceForVehicle(ctx context.Context, vehicleID int64) (string, error)
}

type mapsClient interface {
	AddressFor(ctx context.Context, lat, lon float64) (*domain.Location, error)
}

type VehicleService struct {
	repo    database.VehicleRepository
	events  publisher.EventPublisher
	pricing pricingClient
	maps    mapsClient
}

func NewVehicleService(repo database.VehicleRepository, events publisher.EventPublisher, pricing pricingClient, maps mapsClient) *VehicleService {
	return &VehicleService{
		repo:    repo,
		events:  events,
		pricing: pricing,
		maps:    maps,
	}
}

// List returns all vehicles, each enriched with its current price and
// resolved address.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range vehicles {
		if err := s.enrich(ctx, &vehicles[i]); err != nil {
			return nil, err
		}
	}
	return vehicles, nil
}

func (s *VehicleService) FindByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Save persists a vehicle: an insert when the id is zero, an update of
// the existing record otherwise. Updating an unknown id fails with
// domain.ErrVehicleNotFound.
func (s *VehicleService) Save(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if v.ID == 0 {
		if _, err := s.repo.Insert(ctx, v); err != nil {
			return nil, err
		}
		s.publish(ctx, domain.VehicleCreated, v.ID)
		return v, nil
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.VehicleUpdated, v.ID)
	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, domain.VehicleDeleted, id)
	return nil
}

func (s *VehicleService) RecordTelemetry(ctx context.Context, t *domain.Telemetry) error {
	return s.repo.UpdateTelemetry(ctx, t)
}

func (s *VehicleService) enrich(ctx context.Context, v *domain.Vehicle) error {
	price, err := s.pricing.PriceForVehicle(ctx, v.ID)
	if err != nil {
		return err
	}
	v.Price = price

	loc, err := s.maps.AddressFor(ctx, v.Location.Lat, v.Location.Lon)
	if err != nil {
		return err
	}
	v.Location = *loc
	return nil
}

// publish emits a lifecycle event. Broker outages must not fail the
// originating request, so failures are only logged.
func (s *VehicleService) publish(ctx context.Context, event domain.EventType, id int64) {
	err := s.events.PublishEvent(ctx, &domain.VehicleEvent{
		Event:     event,
		VehicleID: id,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		log.Printf("publish %s for vehicle %d: %v", event, id, err)
	}
}
