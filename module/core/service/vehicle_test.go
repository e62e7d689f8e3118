package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jotshin/vehicles-api/module/core/domain"
)

type mockVehicleRepo struct {
	listFn            func(ctx context.Context) ([]domain.Vehicle, error)
	findByIDFn        func(ctx context.Context, id int64) (*domain.Vehicle, error)
	insertFn          func(ctx context.Context, v *domain.Vehicle) (int64, error)
	updateFn          func(ctx context.Context, v *domain.Vehicle) error
	deleteFn          func(ctx context.Context, id int64) error
	updateTelemetryFn func(ctx context.Context, t *domain.Telemetry) error
}

func (m *mockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	return m.listFn(ctx)
}

func (m *mockVehicleRepo) FindByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockVehicleRepo) Insert(ctx context.Context, v *domain.Vehicle) (int64, error) {
	return m.insertFn(ctx, v)
}

func (m *mockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	return m.updateFn(ctx, v)
}

func (m *mockVehicleRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockVehicleRepo) UpdateTelemetry(ctx context.Context, t *domain.Telemetry) error {
	return m.updateTelemetryFn(ctx, t)
}

type mockPublisher struct {
	events []domain.VehicleEvent
	err    error
}

func (m *mockPublisher) PublishEvent(_ context.Context, event *domain.VehicleEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, *event)
	return nil
}

type mockPricing struct {
	priceFn func(ctx context.Context, vehicleID int64) (string, error)
}

func (m *mockPricing) PriceForVehicle(ctx context.Context, vehicleID int64) (string, error) {
	return m.priceFn(ctx, vehicleID)
}

type mockMaps struct {
	addressFn func(ctx context.Context, lat, lon float64) (*domain.Location, error)
}

func (m *mockMaps) AddressFor(ctx context.Context, lat, lon float64) (*domain.Location, error) {
	return m.addressFn(ctx, lat, lon)
}

func okPricing() *mockPricing {
	return &mockPricing{
		priceFn: func(_ context.Context, _ int64) (string, error) {
			return "USD 21340.50", nil
		},
	}
}

func okMaps() *mockMaps {
	return &mockMaps{
		addressFn: func(_ context.Context, lat, lon float64) (*domain.Location, error) {
			return &domain.Location{
				Lat: lat, Lon: lon,
				Address: "1 Main St", City: "New York", State: "NY", Zip: "10001",
			}, nil
		},
	}
}

func testVehicle(id int64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:        id,
		Condition: domain.ConditionUsed,
		Details:   domain.Details{Make: "Toyota", Model: "Corolla"},
		Location:  domain.Location{Lat: 40.73061, Lon: -73.935242},
	}
}

func TestFindByID_Enriched(t *testing.T) {
	repo := &mockVehicleRepo{
		findByIDFn: func(_ context.Context, id int64) (*domain.Vehicle, error) {
			if id != 42 {
				t.Fatalf("unexpected id: %d", id)
			}
			return testVehicle(42), nil
		},
	}

	svc := NewVehicleService(repo, &mockPublisher{}, okPricing(), okMaps())
	v, err := svc.FindByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Price != "USD 21340.50" {
		t.Errorf("expected price set, got %q", v.Price)
	}
	if v.Location.City != "New York" {
		t.Errorf("expected address resolved, got %q", v.Location.City)
	}
	if v.Location.Lat != 40.73061 {
		t.Errorf("expected coordinates preserved, got %f", v.Location.Lat)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo := &mockVehicleRepo{
		findByIDFn: func(_ context.Context, _ int64) (*domain.Vehicle, error) {
			return nil, domain.ErrVehicleNotFound
		},
	}

	svc := NewVehicleService(repo, &mockPublisher{}, okPricing(), okMaps())
	_, err := svc.FindByID(context.Background(), 99)
	if !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestFindByID_PricingDown(t *testing.T) {
	repo := &mockVehicleRepo{
		findByIDFn: func(_ context.Context, _ int64) (*domain.Vehicle, error) {
			return testVehicle(42), nil
		},
	}
	pricing := &mockPricing{
		priceFn: func(_ context.Context, _ int64) (string, error) {
			return "", domain.ErrUpstreamUnavailable
		},
	}

	svc := NewVehicleService(repo, &mockPublisher{}, pricing, okMaps())
	_, err := svc.FindByID(context.Background(), 42)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestList_EnrichesEveryVehicle(t *testing.T) {
	repo := &mockVehicleRepo{
		listFn: func(_ context.Context) ([]domain.Vehicle, error) {
			return []domain.Vehicle{*testVehicle(1), *testVehicle(2)}, nil
		},
	}

	svc := NewVehicleService(repo, &mockPublisher{}, okPricing(), okMaps())
	vehicles, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}
	for _, v := range vehicles {
		if v.Price == "" {
			t.Errorf("vehicle %d missing price", v.ID)
		}
		if v.Location.City == "" {
			t.Errorf("vehicle %d missing address", v.ID)
		}
	}
}

func TestSave_InsertPublishesCreated(t *testing.T) {
	repo := &mockVehicleRepo{
		insertFn: func(_ context.Context, v *domain.Vehicle) (int64, error) {
			v.ID = 7
			return 7, nil
		},
	}
	pub := &mockPublisher{}

	svc := NewVehicleService(repo, pub, okPricing(), okMaps())
	v := testVehicle(0)
	saved, err := svc.Save(context.Background(), v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 7 {
		t.Errorf("expected id 7, got %d", saved.ID)
	}
	if len(pub.events) != 1 || pub.events[0].Event != domain.VehicleCreated {
		t.Fatalf("expected one vehicle_created event, got %+v", pub.events)
	}
	if pub.events[0].VehicleID != 7 {
		t.Errorf("expected event for vehicle 7, got %d", pub.events[0].VehicleID)
	}
}

func TestSave_UpdatePublishesUpdated(t *testing.T) {
	repo := &mockVehicleRepo{
		updateFn: func(_ context.Context, _ *domain.Vehicle) error {
			return nil
		},
	}
	pub := &mockPublisher{}

	svc := NewVehicleService(repo, pub, okPricing(), okMaps())
	_, err := svc.Save(context.Background(), testVehicle(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Event != domain.VehicleUpdated {
		t.Fatalf("expected one vehicle_updated event, got %+v", pub.events)
	}
}

func TestSave_UpdateUnknownID(t *testing.T) {
	repo := &mockVehicleRepo{
		updateFn: func(_ context.Context, _ *domain.Vehicle) error {
			return domain.ErrVehicleNotFound
		},
	}
	pub := &mockPublisher{}

	svc := NewVehicleService(repo, pub, okPricing(), okMaps())
	_, err := svc.Save(context.Background(), testVehicle(99))
	if !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("expected no events, got %+v", pub.events)
	}
}

func TestSave_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := &mockVehicleRepo{
		insertFn: func(_ context.Context, v *domain.Vehicle) (int64, error) {
			v.ID = 7
			return 7, nil
		},
	}
	pub := &mockPublisher{err: errors.New("broker down")}

	svc := NewVehicleService(repo, pub, okPricing(), okMaps())
	if _, err := svc.Save(context.Background(), testVehicle(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_PublishesDeleted(t *testing.T) {
	repo := &mockVehicleRepo{
		deleteFn: func(_ context.Context, id int64) error {
			if id != 42 {
				t.Fatalf("unexpected id: %d", id)
			}
			return nil
		},
	}
	pub := &mockPublisher{}

	svc := NewVehicleService(repo, pub, okPricing(), okMaps())
	if err := svc.Delete(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Event != domain.VehicleDeleted {
		t.Fatalf("expected one vehicle_deleted event, got %+v", pub.events)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockVehicleRepo{
		deleteFn: func(_ context.Context, _ int64) error {
			return domain.ErrVehicleNotFound
		},
	}
	pub := &mockPublisher{}

	svc := NewVehicleService(repo, pub, okPricing(), okMaps())
	err := svc.Delete(context.Background(), 99)
	if !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("expected no events, got %+v", pub.events)
	}
}

func TestRecordTelemetry(t *testing.T) {
	var recorded *domain.Telemetry
	repo := &mockVehicleRepo{
		updateTelemetryFn: func(_ context.Context, tm *domain.Telemetry) error {
			recorded = tm
			return nil
		},
	}

	svc := NewVehicleService(repo, &mockPublisher{}, okPricing(), okMaps())
	tm := &domain.Telemetry{
		VehicleID: 42,
		Lat:       -6.2088,
		Lon:       106.8456,
		Mileage:   43100,
		Timestamp: time.Unix(1715003456, 0),
	}
	if err := svc.RecordTelemetry(context.Background(), tm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded == nil || recorded.VehicleID != 42 {
		t.Fatal("expected telemetry forwarded to repository")
	}
}
