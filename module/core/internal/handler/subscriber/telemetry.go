package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jotshin/vehicles-api/module/core/domain"
)

const topicPattern = "vehicles/+/telemetry"

type vehicleService interface {
	RecordTelemetry(ctx context.Context, t *domain.Telemetry) error
}

type telemetryMessage struct {
	VehicleID int64   `json:"vehicle_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Mileage   int     `json:"mileage"`
	Timestamp int64   `json:"timestamp"`
}

type TelemetrySubscriber struct {
	client     mqtt.Client
	vehicleSvc vehicleService
}

func NewTelemetrySubscriber(client mqtt.Client, vehicleSvc vehicleService) *TelemetrySubscriber {
	return &TelemetrySubscriber{
		client:     client,
		vehicleSvc: vehicleSvc,
	}
}

func (s *TelemetrySubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *TelemetrySubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw telemetryMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid telemetry message: %v", err)
		return
	}

	if err := validateTelemetryMessage(&raw); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	t := &domain.Telemetry{
		VehicleID: raw.VehicleID,
		Lat:       raw.Latitude,
		Lon:       raw.Longitude,
		Mileage:   raw.Mileage,
		Timestamp: time.Unix(raw.Timestamp, 0),
	}

	if err := s.vehicleSvc.RecordTelemetry(context.Background(), t); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			log.Printf("telemetry for unknown vehicle %d dropped", raw.VehicleID)
			return
		}
		log.Printf("record telemetry error: %v", err)
	}
}

func validateTelemetryMessage(msg *telemetryMessage) error {
	if msg.VehicleID <= 0 {
		return fmt.Errorf("vehicle_id: must be positive")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Mileage < 0 {
		return fmt.Errorf("mileage: must not be negative")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
