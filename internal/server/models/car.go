package models

import "time"

// Car is an asset record owned by a single User. LicensePlate is unique
// across all users; Latitude/Longitude are the last known coordinates and
// are always written through a validated geo.Location.
type Car struct {
	ID           string
	UserID       string
	LicensePlate string
	Latitude     float64
	Longitude    float64
	CreatedAt    time.Time
}
