package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jotshin/vehicles-api/module/core/domain"
)

type vehicleService interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	FindByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Save(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type vehicleRequest struct {
	Condition string          `json:"condition"`
	Details   detailsRequest  `json:"details"`
	Location  locationRequest `json:"location"`
}

type detailsRequest struct {
	Make          string `json:"make"`
	Model         string `json:"model"`
	Body          string `json:"body"`
	Engine        string `json:"engine"`
	FuelType      string `json:"fuel_type"`
	ModelYear     int    `json:"model_year"`
	Mileage       int    `json:"mileage"`
	ExternalColor string `json:"external_color"`
	NumberOfDoors int    `json:"number_of_doors"`
}

type locationRequest struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

type VehicleHandler struct {
	vehicleSvc vehicleService
}

func NewVehicleHandler(vehicleSvc vehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

func (h *VehicleHandler) Register(r *gin.RouterGroup) {
	r.GET("/cars", h.List)
	r.GET("/cars/:id", h.Get)
	r.POST("/cars", h.Create)
	r.PUT("/cars/:id", h.Update)
	r.DELETE("/cars/:id", h.Delete)
}

func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicleSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCollection(vehicles))
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}

	v, err := h.vehicleSvc.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResource(*v))
}

func (h *VehicleHandler) Create(c *gin.Context) {
	req, ok := bindVehicle(c)
	if !ok {
		return
	}

	saved, err := h.vehicleSvc.Save(c.Request.Context(), toVehicle(req, 0))
	if err != nil {
		respondError(c, err)
		return
	}

	res := toResource(*saved)
	c.Header("Location", res.self())
	c.JSON(http.StatusCreated, res)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}

	req, ok := bindVehicle(c)
	if !ok {
		return
	}

	// The path id is authoritative; any id in the body is ignored.
	saved, err := h.vehicleSvc.Save(c.Request.Context(), toVehicle(req, id))
	if err != nil {
		respondError(c, err)
		return
	}

	res := toResource(*saved)
	c.Header("Location", res.self())
	c.JSON(http.StatusCreated, res)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}

	if err := h.vehicleSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func vehicleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return 0, false
	}
	return id, true
}

func bindVehicle(c *gin.Context) (*vehicleRequest, bool) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle payload"})
		return nil, false
	}
	if err := validateVehicleRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &req, true
}

func validateVehicleRequest(req *vehicleRequest) error {
	if !domain.Condition(req.Condition).Valid() {
		return fmt.Errorf("condition: must be NEW or USED")
	}
	if req.Details.Make == "" {
		return fmt.Errorf("details.make: required")
	}
	if req.Details.Model == "" {
		return fmt.Errorf("details.model: required")
	}
	if req.Location.Lat < -90 || req.Location.Lat > 90 {
		return fmt.Errorf("location.latitude: must be between -90 and 90")
	}
	if req.Location.Lon < -180 || req.Location.Lon > 180 {
		return fmt.Errorf("location.longitude: must be between -180 and 180")
	}
	return nil
}

func toVehicle(req *vehicleRequest, id int64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:        id,
		Condition: domain.Condition(req.Condition),
		Details: domain.Details{
			Make:          req.Details.Make,
			Model:         req.Details.Model,
			Body:          req.Details.Body,
			Engine:        req.Details.Engine,
			FuelType:      req.Details.FuelType,
			ModelYear:     req.Details.ModelYear,
			Mileage:       req.Details.Mileage,
			ExternalColor: req.Details.ExternalColor,
			NumberOfDoors: req.Details.NumberOfDoors,
		},
		Location: domain.Location{
			Lat: req.Location.Lat,
			Lon: req.Location.Lon,
		},
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "pricing or maps service unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
