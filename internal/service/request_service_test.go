package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	apperrors "github.com/example/carpool/internal/errors"
	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/internal/repository"
)

type requestFixture struct {
	svc         RequestService
	rideRepo    *repository.MemoryRideRepository
	requestRepo *repository.MemoryRideRequestRepository
	ride        *models.Ride
}

func newRequestFixture(t *testing.T, seats int) *requestFixture {
	t.Helper()
	rideRepo := repository.NewMemoryRideRepository()
	requestRepo := repository.NewMemoryRideRequestRepository()

	fromLat, fromLon := 19.0760, 72.8777
	toLat, toLon := 18.5204, 73.8567
	ride := &models.Ride{
		DriverID:     "driver-1",
		FromName:     "Mumbai",
		FromLat:      &fromLat,
		FromLon:      &fromLon,
		ToName:       "Pune",
		ToLat:        &toLat,
		ToLon:        &toLon,
		RideDate:     "2026-09-01",
		RideTime:     "09:00",
		TotalSeats:   seats,
		DriverName:   "Asha Kumar",
		DriverPhone:  "9876543210",
		DriverAge:    30,
		DriverGender: "female",
	}
	if err := rideRepo.Create(context.Background(), ride); err != nil {
		t.Fatalf("create ride: %v", err)
	}

	return &requestFixture{
		svc:         NewRequestService(requestRepo, rideRepo),
		rideRepo:    rideRepo,
		requestRepo: requestRepo,
		ride:        ride,
	}
}

func apiErrorCode(t *testing.T, err error) string {
	t.Helper()
	apiErr, ok := err.(*apperrors.APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	return apiErr.Code
}

func TestCreateRequest(t *testing.T) {
	driverSession := &models.Session{UID: "driver-1", DisplayName: "Asha Kumar"}
	riderSession := &models.Session{UID: "rider-1", DisplayName: "Ravi Patel"}

	t.Run("unauthenticated", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		_, err := f.svc.CreateRequest(context.Background(), nil, f.ride.ID)
		if code := apiErrorCode(t, err); code != "unauthenticated" {
			t.Errorf("error code = %s, want unauthenticated", code)
		}
	})

	t.Run("self request not allowed", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		_, err := f.svc.CreateRequest(context.Background(), driverSession, f.ride.ID)
		if code := apiErrorCode(t, err); code != "self_request_not_allowed" {
			t.Errorf("error code = %s, want self_request_not_allowed", code)
		}
	})

	t.Run("ride not found", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		_, err := f.svc.CreateRequest(context.Background(), riderSession, "missing-ride")
		if code := apiErrorCode(t, err); code != "ride_not_found" {
			t.Errorf("error code = %s, want ride_not_found", code)
		}
	})

	t.Run("ride full", func(t *testing.T) {
		f := newRequestFixture(t, 1)
		ok, err := f.rideRepo.DecrementSeat(context.Background(), f.ride.ID)
		if err != nil || !ok {
			t.Fatalf("seed decrement failed: ok=%v err=%v", ok, err)
		}

		_, err = f.svc.CreateRequest(context.Background(), riderSession, f.ride.ID)
		if code := apiErrorCode(t, err); code != "ride_full" {
			t.Errorf("error code = %s, want ride_full", code)
		}
	})

	t.Run("duplicate request", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		if _, err := f.svc.CreateRequest(context.Background(), riderSession, f.ride.ID); err != nil {
			t.Fatalf("first request: %v", err)
		}

		_, err := f.svc.CreateRequest(context.Background(), riderSession, f.ride.ID)
		if code := apiErrorCode(t, err); code != "duplicate_request" {
			t.Errorf("error code = %s, want duplicate_request", code)
		}
	})

	t.Run("snapshots ride fields", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		req, err := f.svc.CreateRequest(context.Background(), riderSession, f.ride.ID)
		if err != nil {
			t.Fatalf("CreateRequest() error = %v", err)
		}

		if req.Status != models.RequestStatusPending {
			t.Errorf("status = %s, want %s", req.Status, models.RequestStatusPending)
		}
		if req.Pickup != "Mumbai" || req.Drop != "Pune" {
			t.Errorf("pickup/drop = %s/%s, want Mumbai/Pune", req.Pickup, req.Drop)
		}
		if req.DriverName != "Asha Kumar" || req.RequesterName != "Ravi Patel" {
			t.Errorf("name snapshots = %s/%s", req.DriverName, req.RequesterName)
		}
		if req.RideID != f.ride.ID || req.DriverID != "driver-1" {
			t.Errorf("join fields = %s/%s", req.RideID, req.DriverID)
		}

		// Creating a request does not touch the seat count.
		ride, _ := f.rideRepo.GetByID(context.Background(), f.ride.ID)
		if ride.RemainingSeats != 3 {
			t.Errorf("remaining seats = %d, want 3", ride.RemainingSeats)
		}
	})
}

// flakySeatRepo fails the first n seat decrements with a store error,
// then delegates.
type flakySeatRepo struct {
	repository.RideRepository
	failures int
}

func (f *flakySeatRepo) DecrementSeat(ctx context.Context, id string) (bool, error) {
	if f.failures > 0 {
		f.failures--
		return false, errors.New("store unavailable")
	}
	return f.RideRepository.DecrementSeat(ctx, id)
}

func TestAcceptRequest(t *testing.T) {
	driverSession := &models.Session{UID: "driver-1", DisplayName: "Asha Kumar"}
	riderSession := &models.Session{UID: "rider-1", DisplayName: "Ravi Patel"}

	t.Run("accept pending decrements one seat", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		req, err := f.svc.CreateRequest(context.Background(), riderSession, f.ride.ID)
		if err != nil {
			t.Fatalf("CreateRequest() error = %v", err)
		}

		accepted, err := f.svc.Accept(context.Background(), driverSession, req.ID)
		if err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
		if accepted.Status != models.RequestStatusAccepted {
			t.Errorf("status = %s, want %s", accepted.Status, models.RequestStatusAccepted)
		}

		ride, _ := f.rideRepo.GetByID(context.Background(), f.ride.ID)
		if ride.RemainingSeats != 2 {
			t.Errorf("remaining seats = %d, want 2", ride.RemainingSeats)
		}
	})

	t.Run("request not found", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		_, err := f.svc.Accept(context.Background(), driverSession, "missing")
		if code := apiErrorCode(t, err); code != "request_not_found" {
			t.Errorf("error code = %s, want request_not_found", code)
		}
	})

	t.Run("only the driver may accept", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		req, _ := f.svc.CreateRequest(context.Background(), riderSession, f.ride.ID)

		_, err := f.svc.Accept(context.Background(), riderSession, req.ID)
		if code := apiErrorCode(t, err); code != "forbidden" {
			t.Errorf("error code = %s, want forbidden", code)
		}
	})

	t.Run("accept after reject is invalid and leaves seats unchanged", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		req, _ := f.svc.CreateRequest(context.Background(), riderSession, f.ride.ID)

		if _, err := f.svc.Reject(context.Background(), driverSession, req.ID); err != nil {
			t.Fatalf("Reject() error = %v", err)
		}

		_, err := f.svc.Accept(context.Background(), driverSession, req.ID)
		if code := apiErrorCode(t, err); code != "invalid_transition" {
			t.Errorf("error code = %s, want invalid_transition", code)
		}

		ride, _ := f.rideRepo.GetByID(context.Background(), f.ride.ID)
		if ride.RemainingSeats != 3 {
			t.Errorf("remaining seats = %d, want 3", ride.RemainingSeats)
		}
	})

	t.Run("decrement error reverts the request so accept can be retried", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		req, err := f.svc.CreateRequest(context.Background(), riderSession, f.ride.ID)
		if err != nil {
			t.Fatalf("CreateRequest() error = %v", err)
		}

		flaky := &flakySeatRepo{RideRepository: f.rideRepo, failures: 1}
		svc := NewRequestService(f.requestRepo, flaky)

		if _, err := svc.Accept(context.Background(), driverSession, req.ID); err == nil {
			t.Fatal("expected error when the seat decrement fails")
		}

		// The request must not be stranded in Accepted with no seat taken.
		stored, _ := f.requestRepo.GetByID(context.Background(), req.ID)
		if stored.Status != models.RequestStatusPending {
			t.Fatalf("status after failed decrement = %s, want %s", stored.Status, models.RequestStatusPending)
		}
		ride, _ := f.rideRepo.GetByID(context.Background(), f.ride.ID)
		if ride.RemainingSeats != 3 {
			t.Errorf("remaining seats = %d, want 3", ride.RemainingSeats)
		}

		// Once the store recovers, the same accept goes through.
		accepted, err := svc.Accept(context.Background(), driverSession, req.ID)
		if err != nil {
			t.Fatalf("retried Accept() error = %v", err)
		}
		if accepted.Status != models.RequestStatusAccepted {
			t.Errorf("status = %s, want %s", accepted.Status, models.RequestStatusAccepted)
		}
		ride, _ = f.rideRepo.GetByID(context.Background(), f.ride.ID)
		if ride.RemainingSeats != 2 {
			t.Errorf("remaining seats = %d, want 2", ride.RemainingSeats)
		}
	})

	t.Run("double accept is invalid and decrements only once", func(t *testing.T) {
		f := newRequestFixture(t, 3)
		req, _ := f.svc.CreateRequest(context.Background(), riderSession, f.ride.ID)

		if _, err := f.svc.Accept(context.Background(), driverSession, req.ID); err != nil {
			t.Fatalf("first Accept() error = %v", err)
		}
		_, err := f.svc.Accept(context.Background(), driverSession, req.ID)
		if code := apiErrorCode(t, err); code != "invalid_transition" {
			t.Errorf("error code = %s, want invalid_transition", code)
		}

		ride, _ := f.rideRepo.GetByID(context.Background(), f.ride.ID)
		if ride.RemainingSeats != 2 {
			t.Errorf("remaining seats = %d, want 2", ride.RemainingSeats)
		}
	})
}

func TestRejectRequest(t *testing.T) {
	driverSession := &models.Session{UID: "driver-1", DisplayName: "Asha Kumar"}
	riderSession := &models.Session{UID: "rider-1", DisplayName: "Ravi Patel"}

	f := newRequestFixture(t, 3)
	req, err := f.svc.CreateRequest(context.Background(), riderSession, f.ride.ID)
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}

	rejected, err := f.svc.Reject(context.Background(), driverSession, req.ID)
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if rejected.Status != models.RequestStatusRejected {
		t.Errorf("status = %s, want %s", rejected.Status, models.RequestStatusRejected)
	}

	// Rejection never touches the seat count.
	ride, _ := f.rideRepo.GetByID(context.Background(), f.ride.ID)
	if ride.RemainingSeats != 3 {
		t.Errorf("remaining seats = %d, want 3", ride.RemainingSeats)
	}

	// Terminal: rejecting again fails.
	if _, err := f.svc.Reject(context.Background(), driverSession, req.ID); err == nil {
		t.Error("expected error rejecting a rejected request")
	}
}

// Two racing acceptances against a ride with a single seat: exactly one
// must win and the count must end at zero, never negative.
func TestConcurrentAcceptsNeverOversellSeats(t *testing.T) {
	driverSession := &models.Session{UID: "driver-1", DisplayName: "Asha Kumar"}

	const riders = 8
	f := newRequestFixture(t, 1)

	requestIDs := make([]string, 0, riders)
	for i := 0; i < riders; i++ {
		session := &models.Session{UID: "rider-" + string(rune('a'+i)), DisplayName: "Rider"}
		req, err := f.svc.CreateRequest(context.Background(), session, f.ride.ID)
		if err != nil {
			t.Fatalf("CreateRequest() error = %v", err)
		}
		requestIDs = append(requestIDs, req.ID)
	}

	var wg sync.WaitGroup
	accepted := make(chan string, riders)
	for _, id := range requestIDs {
		wg.Add(1)
		go func(requestID string) {
			defer wg.Done()
			if _, err := f.svc.Accept(context.Background(), driverSession, requestID); err == nil {
				accepted <- requestID
			}
		}(id)
	}
	wg.Wait()
	close(accepted)

	wins := 0
	for range accepted {
		wins++
	}
	if wins != 1 {
		t.Errorf("accepted requests = %d, want exactly 1", wins)
	}

	ride, _ := f.rideRepo.GetByID(context.Background(), f.ride.ID)
	if ride.RemainingSeats != 0 {
		t.Errorf("remaining seats = %d, want 0", ride.RemainingSeats)
	}

	// Losers must be back in Pending, not stuck Accepted.
	acceptedCount := 0
	for _, id := range requestIDs {
		req, _ := f.requestRepo.GetByID(context.Background(), id)
		if req.Status == models.RequestStatusAccepted {
			acceptedCount++
		}
	}
	if acceptedCount != 1 {
		t.Errorf("requests in Accepted state = %d, want 1", acceptedCount)
	}
}
