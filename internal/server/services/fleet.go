package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fleettrack/internal/common"
	"github.com/dmitrijs2005/fleettrack/internal/geo"
	"github.com/dmitrijs2005/fleettrack/internal/server/models"
	"github.com/dmitrijs2005/fleettrack/internal/server/repositories/repomanager"
)

// FleetService owns Car records keyed by license plate. All lookups are
// scoped to the owning user; plate uniqueness is global and enforced by the
// storage layer, so concurrent creates with the same plate resolve to
// exactly one winner.
//
// UpdateLocation and Delete expect a Car previously resolved through the
// owner-scoped FindByPlate; the repository re-checks ownership in SQL, so a
// Car value obtained any other way cannot reach another user's row.
type FleetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewFleetService constructs a FleetService using repositories.
func NewFleetService(db *sql.DB, m repomanager.RepositoryManager) *FleetService {
	return &FleetService{db: db, repomanager: m}
}

// Create registers a new car for user at the given validated location.
// The plate is trimmed first; an empty result yields common.ErrEmptyPlate,
// a plate registered by any user common.ErrPlateAlreadyExists.
func (s *FleetService) Create(ctx context.Context, user *models.User, plate string, location geo.Location) (*models.Car, error) {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return nil, common.ErrEmptyPlate
	}

	latitude, longitude := location.Coordinates()
	car := &models.Car{
		UserID:       user.ID,
		LicensePlate: plate,
		Latitude:     latitude,
		Longitude:    longitude,
	}

	repo := s.repomanager.Cars(s.db)
	car, err := repo.Create(ctx, car)
	if err != nil {
		if errors.Is(err, common.ErrPlateAlreadyExists) {
			return nil, common.ErrPlateAlreadyExists
		}
		return nil, fmt.Errorf("error creating car: %w", err)
	}

	return car, nil
}

// ListForUser returns all cars owned by user; an owner with none gets an
// empty slice. Other users' cars are never included.
func (s *FleetService) ListForUser(ctx context.Context, user *models.User) ([]*models.Car, error) {
	repo := s.repomanager.Cars(s.db)

	result, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing cars: %w", err)
	}
	return result, nil
}

// FindByPlate returns the car with the exact plate owned by user. A plate
// owned by someone else is indistinguishable from an absent one: both yield
// common.ErrNotFound.
func (s *FleetService) FindByPlate(ctx context.Context, user *models.User, plate string) (*models.Car, error) {
	repo := s.repomanager.Cars(s.db)

	car, err := repo.GetByUserAndPlate(ctx, user.ID, plate)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error finding car: %w", err)
	}
	return car, nil
}

// UpdateLocation overwrites the car's coordinates with the validated
// location and persists them, returning the updated record.
func (s *FleetService) UpdateLocation(ctx context.Context, car *models.Car, location geo.Location) (*models.Car, error) {
	car.Latitude, car.Longitude = location.Coordinates()

	repo := s.repomanager.Cars(s.db)
	if err := repo.UpdateLocation(ctx, car); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error updating location: %w", err)
	}
	return car, nil
}

// Delete removes the car and returns the number of rows removed (0 or 1).
func (s *FleetService) Delete(ctx context.Context, car *models.Car) (int64, error) {
	repo := s.repomanager.Cars(s.db)

	n, err := repo.Delete(ctx, car)
	if err != nil {
		return 0, fmt.Errorf("error deleting car: %w", err)
	}
	return n, nil
}
