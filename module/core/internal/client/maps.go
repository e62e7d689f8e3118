package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jotshin/vehicles-api/module/core/domain"
)

type MapsClient struct {
	baseURL string
	http    *http.Client
}

func NewMapsClient(baseURL string) *MapsClient {
	return &MapsClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type addressResponse struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// AddressFor resolves coordinates to a street address via the maps service.
func (c *MapsClient) AddressFor(ctx context.Context, lat, lon float64) (*domain.Location, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/maps?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("maps request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: maps: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: maps returned %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var ar addressResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("%w: maps decode: %v", domain.ErrUpstreamUnavailable, err)
	}

	return &domain.Location{
		Lat:     lat,
		Lon:     lon,
		Address: ar.Address,
		City:    ar.City,
		State:   ar.State,
		Zip:     ar.Zip,
	}, nil
}
