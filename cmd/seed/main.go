// Command seed populates an empty database with development users and cars.
//
// It applies migrations first, signs up two users through the credential
// store, and inserts user1's cars inside a single transaction.
package main

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/fleettrack/internal/dbx"
	"github.com/dmitrijs2005/fleettrack/internal/geo"
	"github.com/dmitrijs2005/fleettrack/internal/server/config"
	"github.com/dmitrijs2005/fleettrack/internal/server/models"
	"github.com/dmitrijs2005/fleettrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fleettrack/internal/server/services"
)

var devCars = []struct {
	plate    string
	lat, lon string
}{
	{"LOL1337", "19.341803", "-99.196494"},
	{"ASAP123", "19.435499", "-99.274269"},
	{"FTW6667", "19.520504", "-99.109185"},
}

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	credentials := services.NewCredentialService(db, rm, cfg)

	user1, err := credentials.SignUp(ctx, "user1", "password1")
	if err != nil {
		log.Fatalf("signup user1: %v", err)
	}
	if _, err := credentials.SignUp(ctx, "user2", "password2"); err != nil {
		log.Fatalf("signup user2: %v", err)
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := rm.Cars(tx)
		for _, c := range devCars {
			location, err := geo.ParseLocation(c.lat, c.lon)
			if err != nil {
				return err
			}
			latitude, longitude := location.Coordinates()
			car := &models.Car{
				UserID:       user1.ID,
				LicensePlate: c.plate,
				Latitude:     latitude,
				Longitude:    longitude,
			}
			if _, err := repo.Create(ctx, car); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("seeding cars: %v", err)
	}

	log.Printf("seeded 2 users and %d cars", len(devCars))
}
