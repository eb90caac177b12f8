package httpapi

import (
	"encoding/json"

	"github.com/dmitrijs2005/fleettrack/internal/server/models"
)

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// carRequest accepts latitude/longitude as JSON strings or numbers;
// json.Number keeps the textual form for the coordinate validator.
type carRequest struct {
	LicensePlate string      `json:"license_plate"`
	Latitude     json.Number `json:"latitude"`
	Longitude    json.Number `json:"longitude"`
}

type carResponse struct {
	ID           string  `json:"id"`
	User         string  `json:"user"`
	LicensePlate string  `json:"license_plate"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

func toCarResponse(car *models.Car) carResponse {
	return carResponse{
		ID:           car.ID,
		User:         car.UserID,
		LicensePlate: car.LicensePlate,
		Latitude:     car.Latitude,
		Longitude:    car.Longitude,
	}
}
