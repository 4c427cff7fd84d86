package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/pkg/utils"
	"github.com/jmoiron/sqlx"
)

type RideRequestRepository interface {
	Create(ctx context.Context, req *models.RideRequest) error
	GetByID(ctx context.Context, id string) (*models.RideRequest, error)
	GetByDriverID(ctx context.Context, driverID string) ([]*models.RideRequest, error)
	GetByRequesterID(ctx context.Context, requesterID string) ([]*models.RideRequest, error)
	GetOutstandingByRideAndRequester(ctx context.Context, rideID, requesterID string) (*models.RideRequest, error)
	TransitionStatus(ctx context.Context, id, from, to string) (bool, error)
}

type rideRequestRepository struct {
	db *sqlx.DB
}

func NewRideRequestRepository(db *sqlx.DB) RideRequestRepository {
	return &rideRequestRepository{db: db}
}

func (r *rideRequestRepository) Create(ctx context.Context, req *models.RideRequest) error {
	if req.ID == "" {
		req.ID = utils.GenerateID()
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	req.Status = models.RequestStatusPending

	query := `
		INSERT INTO ride_requests (id, ride_id, driver_id, requester_id,
			driver_name, requester_name, pickup, drop_off, ride_date, ride_time,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.RideID, req.DriverID, req.RequesterID,
		req.DriverName, req.RequesterName, req.Pickup, req.Drop, req.RideDate, req.RideTime,
		req.Status, req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *rideRequestRepository) GetByID(ctx context.Context, id string) (*models.RideRequest, error) {
	var req models.RideRequest
	query := `SELECT * FROM ride_requests WHERE id = $1`
	err := r.db.GetContext(ctx, &req, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &req, err
}

func (r *rideRequestRepository) GetByDriverID(ctx context.Context, driverID string) ([]*models.RideRequest, error) {
	var reqs []*models.RideRequest
	query := `SELECT * FROM ride_requests WHERE driver_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &reqs, query, driverID)
	return reqs, err
}

func (r *rideRequestRepository) GetByRequesterID(ctx context.Context, requesterID string) ([]*models.RideRequest, error) {
	var reqs []*models.RideRequest
	query := `SELECT * FROM ride_requests WHERE requester_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &reqs, query, requesterID)
	return reqs, err
}

// GetOutstandingByRideAndRequester finds a Pending or Accepted request for
// the (ride, requester) pair, used to stop duplicate requests.
func (r *rideRequestRepository) GetOutstandingByRideAndRequester(ctx context.Context, rideID, requesterID string) (*models.RideRequest, error) {
	var req models.RideRequest
	query := `
		SELECT * FROM ride_requests
		WHERE ride_id = $1 AND requester_id = $2 AND status IN ($3, $4)
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &req, query, rideID, requesterID,
		models.RequestStatusPending, models.RequestStatusAccepted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &req, err
}

// TransitionStatus moves a request from one status to another as a single
// conditional update. Returns false when the request was not in the
// expected status, so concurrent accept/reject calls on the same request
// resolve to exactly one winner.
func (r *rideRequestRepository) TransitionStatus(ctx context.Context, id, from, to string) (bool, error) {
	query := `UPDATE ride_requests SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
