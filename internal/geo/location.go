// Package geo provides parsing and validation of geographic coordinates.
// A Location can only be obtained through ParseLocation or NewLocation,
// so no value with out-of-range coordinates can exist.
package geo

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dmitrijs2005/fleettrack/internal/common"
)

// Location is an immutable latitude/longitude pair in degrees.
type Location struct {
	latitude  float64
	longitude float64
}

// ParseLocation parses textual decimal coordinates and range-checks them.
// Latitude is checked before longitude, so if both are out of range only
// ErrInvalidLatitude is reported.
func ParseLocation(latitude, longitude string) (Location, error) {
	lat, err := strconv.ParseFloat(latitude, 64)
	if err != nil {
		return Location{}, fmt.Errorf("%w: latitude %q", common.ErrInvalidCoordinateFormat, latitude)
	}

	lon, err := strconv.ParseFloat(longitude, 64)
	if err != nil {
		return Location{}, fmt.Errorf("%w: longitude %q", common.ErrInvalidCoordinateFormat, longitude)
	}

	return NewLocation(lat, lon)
}

// NewLocation range-checks already-parsed coordinates.
func NewLocation(latitude, longitude float64) (Location, error) {
	if math.Abs(latitude) > 90 {
		return Location{}, fmt.Errorf("%w: %v", common.ErrInvalidLatitude, latitude)
	}
	if math.Abs(longitude) > 180 {
		return Location{}, fmt.Errorf("%w: %v", common.ErrInvalidLongitude, longitude)
	}
	return Location{latitude: latitude, longitude: longitude}, nil
}

// Latitude returns the latitude in degrees, range [-90, 90].
func (l Location) Latitude() float64 { return l.latitude }

// Longitude returns the longitude in degrees, range [-180, 180].
func (l Location) Longitude() float64 { return l.longitude }

// Coordinates returns the (latitude, longitude) ordered pair for callers
// expecting a 2-tuple.
func (l Location) Coordinates() (float64, float64) {
	return l.latitude, l.longitude
}
