// Package httpapi exposes the fleet service as a JSON API over HTTP.
// Every car route authenticates the caller per request with HTTP Basic
// credentials through the credential store; there are no sessions or tokens.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/fleettrack/internal/common"
	"github.com/dmitrijs2005/fleettrack/internal/geo"
	"github.com/dmitrijs2005/fleettrack/internal/logging"
	"github.com/dmitrijs2005/fleettrack/internal/server/models"
)

type Handler struct {
	credentials CredentialService
	fleet       FleetService
	logger      logging.Logger
}

func NewHandler(credentials CredentialService, fleet FleetService, logger logging.Logger) *Handler {
	return &Handler{credentials: credentials, fleet: fleet, logger: logger}
}

// Register attaches all API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users", h.signUp)
	mux.HandleFunc("GET /api/cars", h.withUser(h.listCars))
	mux.HandleFunc("POST /api/cars", h.withUser(h.createCar))
	mux.HandleFunc("PUT /api/cars/{plate}", h.withUser(h.updateCar))
	mux.HandleFunc("DELETE /api/cars/{plate}", h.withUser(h.deleteCar))
}

// withUser wraps a handler with per-request Basic authentication.
// UserNotFound and InvalidPassword are deliberately collapsed into one 401
// so callers cannot enumerate usernames.
func (h *Handler) withUser(next func(w http.ResponseWriter, r *http.Request, user *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			h.unauthorized(w)
			return
		}

		user, err := h.credentials.Authenticate(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, common.ErrUserNotFound) || errors.Is(err, common.ErrInvalidPassword) {
				h.unauthorized(w)
				return
			}
			h.logger.Error(r.Context(), "authentication failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		next(w, r, user)
	}
}

func (h *Handler) unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="fleettrack"`)
	http.Error(w, "login rejected", http.StatusUnauthorized)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "request must be JSON", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password required", http.StatusBadRequest)
		return
	}

	user, err := h.credentials.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user signed up", "username", user.UserName)
	h.writeJSON(w, http.StatusCreated, signupResponse{ID: user.ID, Username: user.UserName})
}

func (h *Handler) listCars(w http.ResponseWriter, r *http.Request, user *models.User) {
	cars, err := h.fleet.ListForUser(r.Context(), user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result := make([]carResponse, 0, len(cars))
	for _, car := range cars {
		result = append(result, toCarResponse(car))
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) createCar(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "request must be JSON", http.StatusBadRequest)
		return
	}
	if req.LicensePlate == "" {
		http.Error(w, `field "license_plate" missing`, http.StatusBadRequest)
		return
	}

	location, ok := h.parseLocation(w, req)
	if !ok {
		return
	}

	car, err := h.fleet.Create(r.Context(), user, req.LicensePlate, location)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "car registered", "plate", car.LicensePlate, "user", user.UserName)
	h.writeJSON(w, http.StatusOK, toCarResponse(car))
}

func (h *Handler) updateCar(w http.ResponseWriter, r *http.Request, user *models.User) {
	car, err := h.fleet.FindByPlate(r.Context(), user, r.PathValue("plate"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "request must be JSON", http.StatusBadRequest)
		return
	}

	location, ok := h.parseLocation(w, req)
	if !ok {
		return
	}

	updated, err := h.fleet.UpdateLocation(r.Context(), car, location)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toCarResponse(updated))
}

func (h *Handler) deleteCar(w http.ResponseWriter, r *http.Request, user *models.User) {
	car, err := h.fleet.FindByPlate(r.Context(), user, r.PathValue("plate"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	n, err := h.fleet.Delete(r.Context(), car)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, deleteResponse{Deleted: n > 0})
}

// parseLocation validates the coordinate fields of req, writing a 400
// response and returning ok=false on any failure.
func (h *Handler) parseLocation(w http.ResponseWriter, req carRequest) (geo.Location, bool) {
	if req.Latitude == "" {
		http.Error(w, `field "latitude" missing`, http.StatusBadRequest)
		return geo.Location{}, false
	}
	if req.Longitude == "" {
		http.Error(w, `field "longitude" missing`, http.StatusBadRequest)
		return geo.Location{}, false
	}

	location, err := geo.ParseLocation(req.Latitude.String(), req.Longitude.String())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return geo.Location{}, false
	}
	return location, true
}

// writeError maps domain error kinds to stable messages and status codes.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrEmptyPlate):
		http.Error(w, "license plate can't be empty", http.StatusBadRequest)
	case errors.Is(err, common.ErrPlateAlreadyExists):
		http.Error(w, "license plate already in use", http.StatusBadRequest)
	case errors.Is(err, common.ErrDuplicateUsername):
		http.Error(w, "username already exists", http.StatusBadRequest)
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, "car not found", http.StatusBadRequest)
	default:
		h.logger.Error(r.Context(), "request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(context.Background(), "response encoding failed", "error", err)
	}
}
