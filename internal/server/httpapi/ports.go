package httpapi

import (
	"context"

	"github.com/dmitrijs2005/fleettrack/internal/geo"
	"github.com/dmitrijs2005/fleettrack/internal/server/models"
)

// CredentialService is the slice of the credential store the API needs.
type CredentialService interface {
	SignUp(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// FleetService is the slice of the vehicle registry the API needs.
type FleetService interface {
	Create(ctx context.Context, user *models.User, plate string, location geo.Location) (*models.Car, error)
	ListForUser(ctx context.Context, user *models.User) ([]*models.Car, error)
	FindByPlate(ctx context.Context, user *models.User, plate string) (*models.Car, error)
	UpdateLocation(ctx context.Context, car *models.Car, location geo.Location) (*models.Car, error)
	Delete(ctx context.Context, car *models.Car) (int64, error)
}
