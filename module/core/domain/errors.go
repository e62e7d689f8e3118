package domain

import "errors"

var (
	// ErrVehicleNotFound signals that no vehicle exists for the requested id.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrUpstreamUnavailable signals that a required enrichment service
	// (pricing or maps) could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)
