package domain

import "time"

type Condition string

const (
	ConditionNew  Condition = "NEW"
	ConditionUsed Condition = "USED"
)

func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

type Details struct {
	Make          string `json:"make"`
	Model         string `json:"model"`
	Body          string `json:"body,omitempty"`
	Engine        string `json:"engine,omitempty"`
	FuelType      string `json:"fuel_type,omitempty"`
	ModelYear     int    `json:"model_year,omitempty"`
	Mileage       int    `json:"mileage,omitempty"`
	ExternalColor string `json:"external_color,omitempty"`
	NumberOfDoors int    `json:"number_of_doors,omitempty"`
}

// Location carries the stored coordinates of a vehicle. The address
// fields are resolved per request by the maps service and are never
// persisted.
type Location struct {
	Lat     float64 `json:"latitude"`
	Lon     float64 `json:"longitude"`
	Address string  `json:"address,omitempty"`
	City    string  `json:"city,omitempty"`
	State   string  `json:"state,omitempty"`
	Zip     string  `json:"zip,omitempty"`
}

type Vehicle struct {
	ID         int64     `json:"id"`
	Condition  Condition `json:"condition"`
	Details    Details   `json:"details"`
	Location   Location  `json:"location"`
	Price      string    `json:"price,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type EventType string

const (
	VehicleCreated EventType = "vehicle_created"
	VehicleUpdated EventType = "vehicle_updated"
	VehicleDeleted EventType = "vehicle_deleted"
)

type VehicleEvent struct {
	Event     EventType `json:"event"`
	VehicleID int64     `json:"vehicle_id"`
	Timestamp int64     `json:"timestamp"`
}

// Telemetry is a position and odometer report from a vehicle unit.
type Telemetry struct {
	VehicleID int64
	Lat       float64
	Lon       float64
	Mileage   int
	Timestamp time.Time
}
