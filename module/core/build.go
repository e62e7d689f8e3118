package core

import (
	"database/sql"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jotshin/vehicles-api/module/core/internal/client"
	handler "github.com/jotshin/vehicles-api/module/core/internal/handler/http"
	"github.com/jotshin/vehicles-api/module/core/internal/handler/subscriber"
	"github.com/jotshin/vehicles-api/module/core/internal/repository/database/postgres"
	"github.com/jotshin/vehicles-api/module/core/internal/repository/publisher/rabbitmq"
	"github.com/jotshin/vehicles-api/module/core/service"
)

type Module struct {
	VehicleSvc *service.VehicleService
	handler    *handler.VehicleHandler
	subscriber *subscriber.TelemetrySubscriber
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, pricingURL, mapsURL string) (*Module, error) {
	vehicleRepo := postgres.NewVehicleRepo(db)

	eventPub, err := rabbitmq.NewVehicleEventPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("vehicle event publisher: %w", err)
	}

	pricing := client.NewPricingClient(pricingURL)
	maps := client.NewMapsClient(mapsURL)

	vehicleSvc := service.NewVehicleService(vehicleRepo, eventPub, pricing, maps)

	h := handler.NewVehicleHandler(vehicleSvc)
	sub := subscriber.NewTelemetrySubscriber(mqttClient, vehicleSvc)

	return &Module{
		VehicleSvc: vehicleSvc,
		handler:    h,
		subscriber: sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.handler.Register(r)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
