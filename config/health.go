package config

import (
	"database/sql"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
)

// HealthChecker reports the state of every dependency the API needs:
// postgres, the message brokers, and the pricing/maps enrichment
// services whose outage surfaces to clients as a 500.
type HealthChecker struct {
	db         *sql.DB
	amqpConn   *amqp.Connection
	mqtt       mqtt.Client
	pricingURL string
	mapsURL    string
	http       *http.Client
}

func NewHealthChecker(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, pricingURL, mapsURL string) *HealthChecker {
	return &HealthChecker{
		db:         db,
		amqpConn:   amqpConn,
		mqtt:       mqttClient,
		pricingURL: pricingURL,
		mapsURL:    mapsURL,
		http:       &http.Client{Timeout: 2 * time.Second},
	}
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	status := http.StatusOK
	deps := gin.H{}

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		deps["postgres"] = gin.H{"status": "down", "error": err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		deps["postgres"] = gin.H{"status": "up"}
	}

	if h.amqpConn.IsClosed() {
		deps["rabbitmq"] = gin.H{"status": "down", "error": "connection closed"}
		status = http.StatusServiceUnavailable
	} else {
		deps["rabbitmq"] = gin.H{"status": "up"}
	}

	if !h.mqtt.IsConnected() {
		deps["mqtt"] = gin.H{"status": "down", "error": "not connected"}
		status = http.StatusServiceUnavailable
	} else {
		deps["mqtt"] = gin.H{"status": "up"}
	}

	for name, url := range map[string]string{"pricing": h.pricingURL, "maps": h.mapsURL} {
		if err := h.pingUpstream(url); err != nil {
			deps[name] = gin.H{"status": "down", "error": err.Error()}
			status = http.StatusServiceUnavailable
		} else {
			deps[name] = gin.H{"status": "up"}
		}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}

func (h *HealthChecker) pingUpstream(url string) error {
	resp, err := h.http.Get(url + "/healthz")
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}
