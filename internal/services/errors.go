// Package services defines the business logic for the vehicle inventory.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrVehicleNotFound indicates that the requested vehicle does not exist.
	// It covers both the explicit "no row" signal on reads and the
	// "zero rows affected" outcome on updates and deletes.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrMissingFields is returned when a create or update payload lacks one
	// of the required fields (modelo, marca, ano, preco). The check treats
	// empty strings and zero numbers as missing, matching the presence
	// semantics the frontend relies on.
	ErrMissingFields = errors.New("required fields: modelo, marca, ano, preco")
)
