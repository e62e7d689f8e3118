package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Mock telemetry generator for local development: publishes position
// and odometer reports for a pool of vehicle ids at a fixed interval.

type telemetryMessage struct {
	VehicleID int64   `json:"vehicle_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Mileage   int     `json:"mileage"`
	Timestamp int64   `json:"timestamp"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds> [vehicle_id...]\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	vehiclePool := []int64{1, 2, 3, 4, 5}
	if len(os.Args) > 2 {
		vehiclePool = vehiclePool[:0]
		for _, arg := range os.Args[2:] {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil || id <= 0 {
				fmt.Fprintf(os.Stderr, "error: vehicle id must be a positive integer: %s\n", arg)
				os.Exit(1)
			}
			vehiclePool = append(vehiclePool, id)
		}
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("vehicles-mock-telemetry")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	mileage := make(map[int64]int, len(vehiclePool))
	for _, id := range vehiclePool {
		mileage[id] = 10000 + rand.Intn(90000)
	}

	log.Printf("connected to %s, publishing every %ds...", broker, intervalSec)
	log.Printf("vehicle pool: %v", vehiclePool)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		vid := vehiclePool[rand.Intn(len(vehiclePool))]
		mileage[vid] += rand.Intn(5)

		msg := telemetryMessage{
			VehicleID: vid,
			Latitude:  40.73061 + (rand.Float64()-0.5)*0.1,
			Longitude: -73.935242 + (rand.Float64()-0.5)*0.1,
			Mileage:   mileage[vid],
			Timestamp: time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("vehicles/%d/telemetry", vid)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
