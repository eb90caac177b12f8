package cars

import (
	"context"

	"github.com/dmitrijs2005/fleettrack/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Car, error)
	GetByUserAndPlate(ctx context.Context, userID string, plate string) (*models.Car, error)
	UpdateLocation(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, car *models.Car) (int64, error)
}
