package service

import (
	"context"
	"log"

	apperrors "github.com/example/carpool/internal/errors"
	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/internal/repository"
)

// RequestService manages the Pending -> Accepted/Rejected lifecycle of
// ride requests and keeps seat counts consistent with acceptances.
type RequestService interface {
	CreateRequest(ctx context.Context, session *models.Session, rideID string) (*models.RideRequest, error)
	Accept(ctx context.Context, session *models.Session, requestID string) (*models.RideRequest, error)
	Reject(ctx context.Context, session *models.Session, requestID string) (*models.RideRequest, error)
	ListIncoming(ctx context.Context, session *models.Session) ([]*models.RideRequest, error)
	ListMine(ctx context.Context, session *models.Session) ([]*models.RideRequest, error)
}

type requestService struct {
	requestRepo repository.RideRequestRepository
	rideRepo    repository.RideRepository
}

func NewRequestService(requestRepo repository.RideRequestRepository, rideRepo repository.RideRepository) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		rideRepo:    rideRepo,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, session *models.Session, rideID string) (*models.RideRequest, error) {
	if session == nil {
		return nil, apperrors.Unauthenticated()
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, apperrors.RideNotFound()
	}

	if ride.DriverID == session.UID {
		return nil, apperrors.SelfRequestNotAllowed()
	}
	if ride.IsFull() {
		return nil, apperrors.RideFull()
	}

	existing, err := s.requestRepo.GetOutstandingByRideAndRequester(ctx, ride.ID, session.UID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.DuplicateRequest()
	}

	requesterName := session.DisplayName
	if requesterName == "" {
		requesterName = "Unknown"
	}

	// Route and schedule fields are copied from the ride at this instant.
	req := &models.RideRequest{
		RideID:        ride.ID,
		DriverID:      ride.DriverID,
		RequesterID:   session.UID,
		DriverName:    ride.DriverName,
		RequesterName: requesterName,
		Pickup:        ride.FromName,
		Drop:          ride.ToName,
		RideDate:      ride.RideDate,
		RideTime:      ride.RideTime,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Accept transitions a Pending request to Accepted and takes one seat off
// the ride. The status transition is a conditional update, so exactly one
// of two racing accepts wins; the seat decrement is decrement-if-positive,
// so the count can never go negative. A decrement that takes no seat,
// whether the ride is full or the store errored, reverts the request to
// Pending.
func (s *requestService) Accept(ctx context.Context, session *models.Session, requestID string) (*models.RideRequest, error) {
	if session == nil {
		return nil, apperrors.Unauthenticated()
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.RequestNotFound()
	}
	if req.DriverID != session.UID {
		return nil, apperrors.Forbidden("only the ride's driver can respond to this request")
	}
	if !req.CanTransitionTo(models.RequestStatusAccepted) {
		return nil, apperrors.InvalidTransition(req.Status, models.RequestStatusAccepted)
	}

	ok, err := s.requestRepo.TransitionStatus(ctx, req.ID, models.RequestStatusPending, models.RequestStatusAccepted)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race to a concurrent accept/reject on the same request.
		return nil, apperrors.InvalidTransition(req.Status, models.RequestStatusAccepted)
	}

	// The seat decrement joins on the ride's store id, never on a
	// denormalized copy. Any decrement that takes no seat must undo the
	// status transition, or the request is stranded Accepted with no seat.
	decremented, err := s.rideRepo.DecrementSeat(ctx, req.RideID)
	if err != nil {
		s.revertAccept(ctx, req.ID, "seat decrement failed")
		return nil, err
	}
	if !decremented {
		ride, rideErr := s.rideRepo.GetByID(ctx, req.RideID)
		if rideErr == nil && ride == nil {
			// The underlying ride record is gone. Logged as an anomaly;
			// the acceptance stands, there is no compensating transaction.
			log.Printf("accepted request %s references missing ride %s", req.ID, req.RideID)
			return nil, apperrors.RideNotFound()
		}
		s.revertAccept(ctx, req.ID, "ride already full")
		return nil, apperrors.RideFull()
	}

	req.Status = models.RequestStatusAccepted
	return req, nil
}

// revertAccept puts a request that could not take a seat back to Pending,
// so the driver can retry once the underlying condition clears.
func (s *requestService) revertAccept(ctx context.Context, requestID, reason string) {
	if _, err := s.requestRepo.TransitionStatus(ctx, requestID, models.RequestStatusAccepted, models.RequestStatusPending); err != nil {
		log.Printf("failed to revert request %s (%s): %v", requestID, reason, err)
	}
}

// Reject transitions a Pending request to Rejected. No seat effect.
func (s *requestService) Reject(ctx context.Context, session *models.Session, requestID string) (*models.RideRequest, error) {
	if session == nil {
		return nil, apperrors.Unauthenticated()
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.RequestNotFound()
	}
	if req.DriverID != session.UID {
		return nil, apperrors.Forbidden("only the ride's driver can respond to this request")
	}
	if !req.CanTransitionTo(models.RequestStatusRejected) {
		return nil, apperrors.InvalidTransition(req.Status, models.RequestStatusRejected)
	}

	ok, err := s.requestRepo.TransitionStatus(ctx, req.ID, models.RequestStatusPending, models.RequestStatusRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.InvalidTransition(req.Status, models.RequestStatusRejected)
	}

	req.Status = models.RequestStatusRejected
	return req, nil
}

func (s *requestService) ListIncoming(ctx context.Context, session *models.Session) ([]*models.RideRequest, error) {
	if session == nil {
		return nil, apperrors.Unauthenticated()
	}
	return s.requestRepo.GetByDriverID(ctx, session.UID)
}

func (s *requestService) ListMine(ctx context.Context, session *models.Session) ([]*models.RideRequest, error) {
	if session == nil {
		return nil, apperrors.Unauthenticated()
	}
	return s.requestRepo.GetByRequesterID(ctx, session.UID)
}
