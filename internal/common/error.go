// Package common defines shared constants and sentinel errors used across
// FleetTrack components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Coordinate validation errors.
	ErrInvalidCoordinateFormat = errors.New("invalid coordinate format")
	ErrInvalidLatitude         = errors.New("invalid latitude")
	ErrInvalidLongitude        = errors.New("invalid longitude")

	// Credential errors.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPassword   = errors.New("invalid password")

	// Registry errors.
	ErrEmptyPlate         = errors.New("license plate can't be empty")
	ErrPlateAlreadyExists = errors.New("license plate already in use")
	ErrNotFound           = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")
)
