package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/pkg/utils"
	"github.com/jmoiron/sqlx"
)

type RideRepository interface {
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id string) (*models.Ride, error)
	GetAll(ctx context.Context) ([]*models.Ride, error)
	GetByDriverID(ctx context.Context, driverID string) ([]*models.Ride, error)
	DecrementSeat(ctx context.Context, id string) (bool, error)
}

type rideRepository struct {
	db *sqlx.DB
}

func NewRideRepository(db *sqlx.DB) RideRepository {
	return &rideRepository{db: db}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	if ride.ID == "" {
		ride.ID = utils.GenerateID()
	}
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = time.Now()
	ride.RemainingSeats = ride.TotalSeats

	query := `
		INSERT INTO rides (id, driver_id, from_name, from_lat, from_lon,
			to_name, to_lat, to_lon, ride_date, ride_time,
			total_seats, remaining_seats, price_per_seat,
			driver_name, driver_phone, driver_age, driver_gender,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err := r.db.ExecContext(ctx, query,
		ride.ID, ride.DriverID, ride.FromName, ride.FromLat, ride.FromLon,
		ride.ToName, ride.ToLat, ride.ToLon, ride.RideDate, ride.RideTime,
		ride.TotalSeats, ride.RemainingSeats, ride.PricePerSeat,
		ride.DriverName, ride.DriverPhone, ride.DriverAge, ride.DriverGender,
		ride.CreatedAt, ride.UpdatedAt)
	return err
}

func (r *rideRepository) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	var ride models.Ride
	query := `SELECT * FROM rides WHERE id = $1`
	err := r.db.GetContext(ctx, &ride, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &ride, err
}

func (r *rideRepository) GetAll(ctx context.Context) ([]*models.Ride, error) {
	var rides []*models.Ride
	query := `SELECT * FROM rides ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &rides, query)
	return rides, err
}

func (r *rideRepository) GetByDriverID(ctx context.Context, driverID string) ([]*models.Ride, error) {
	var rides []*models.Ride
	query := `SELECT * FROM rides WHERE driver_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &rides, query, driverID)
	return rides, err
}

// DecrementSeat takes one seat off a ride as a single conditional update.
// The WHERE clause is the serialization point: two concurrent acceptances
// can never drive the count negative. Returns false when the ride had no
// seats left or does not exist (zero rows updated).
func (r *rideRepository) DecrementSeat(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE rides
		SET remaining_seats = remaining_seats - 1, updated_at = $1
		WHERE id = $2 AND remaining_seats > 0
	`
	res, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
