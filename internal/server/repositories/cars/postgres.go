// Package cars provides the PostgreSQL-backed repository for car records.
//
// Plate uniqueness is global and enforced by the license_plate unique
// constraint, so concurrent creates with the same plate race safely: the
// loser observes common.ErrPlateAlreadyExists. Mutations are additionally
// scoped by owner id so a Car value not resolved through the owner-scoped
// lookup cannot touch another user's row.
package cars

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/fleettrack/internal/common"
	"github.com/dmitrijs2005/fleettrack/internal/dbx"
	"github.com/dmitrijs2005/fleettrack/internal/server/models"
)

// PostgresRepository implements car storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new car. A plate collision on the unique constraint is
// reported as common.ErrPlateAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, car *models.Car) (*models.Car, error) {

	query :=
		`INSERT INTO cars (id, user_id, license_plate, latitude, longitude)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	car.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		car.ID, car.UserID, car.LicensePlate, car.Latitude, car.Longitude).Scan(&car.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrPlateAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return car, nil
}

// ListByUser returns all cars owned by userID, oldest first.
// An owner with no cars gets an empty slice.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Car, error) {
	query :=
		`SELECT id, user_id, license_plate, latitude, longitude, created_at FROM cars
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select cars: %w", err)
	}
	defer rows.Close()

	result := []*models.Car{}
	for rows.Next() {
		var item models.Car
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.LicensePlate, &item.Latitude, &item.Longitude, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByUserAndPlate returns the car with the given plate owned by userID.
// A plate owned by a different user is indistinguishable from a missing one:
// both yield common.ErrNotFound.
func (r *PostgresRepository) GetByUserAndPlate(ctx context.Context, userID string, plate string) (*models.Car, error) {
	query :=
		`SELECT id, user_id, license_plate, latitude, longitude, created_at FROM cars
		 WHERE user_id = $1 AND license_plate = $2
		 `

	car := &models.Car{}
	err := r.db.QueryRowContext(ctx, query, userID, plate).Scan(
		&car.ID, &car.UserID, &car.LicensePlate, &car.Latitude, &car.Longitude, &car.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return car, nil
}

// UpdateLocation persists car's latitude/longitude. The update is scoped by
// both id and owner id; zero affected rows means the row is gone (or never
// belonged to that owner) and yields common.ErrNotFound.
func (r *PostgresRepository) UpdateLocation(ctx context.Context, car *models.Car) error {
	query :=
		`UPDATE cars SET latitude = $1, longitude = $2
		 WHERE id = $3 AND user_id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, car.Latitude, car.Longitude, car.ID, car.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// Delete removes the car and returns the number of rows removed (0 or 1).
func (r *PostgresRepository) Delete(ctx context.Context, car *models.Car) (int64, error) {
	query :=
		`DELETE FROM cars
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, car.ID, car.UserID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
