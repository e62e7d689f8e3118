package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jotshin/vehicles-api/module/core/domain"
)

type PricingClient struct {
	baseURL string
	http    *http.Client
}

func NewPricingClient(baseURL string) *PricingClient {
	return &PricingClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type priceResponse struct {
	Currency  string  `json:"currency"`
	Price     float64 `json:"price"`
	VehicleID int64   `json:"vehicle_id"`
}

// PriceForVehicle asks the pricing service for the current price of a
// vehicle and renders it as a display string, e.g. "USD 21340.50".
func (c *PricingClient) PriceForVehicle(ctx context.Context, vehicleID int64) (string, error) {
	url := fmt.Sprintf("%s/prices/%d", c.baseURL, vehicleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("pricing request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: pricing: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: pricing returned %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var pr priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("%w: pricing decode: %v", domain.ErrUpstreamUnavailable, err)
	}

	return fmt.Sprintf("%s %.2f", pr.Currency, pr.Price), nil
}
